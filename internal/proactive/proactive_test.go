package proactive

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djobea/djobea-ai/internal/messaging"
	"github.com/djobea/djobea-ai/internal/requests"
)

func TestRegistryRunsAndClearsTask(t *testing.T) {
	r := NewRegistry(nil)
	done := make(chan struct{})

	r.Start(uuid.New(), func(ctx context.Context) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
	assert.Eventually(t, func() bool { return r.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRegistryReplacesRunningTask(t *testing.T) {
	r := NewRegistry(nil)
	id := uuid.New()
	firstCancelled := make(chan struct{})

	r.Start(id, func(ctx context.Context) {
		<-ctx.Done()
		close(firstCancelled)
	})
	r.Start(id, func(ctx context.Context) {
		<-ctx.Done()
	})

	select {
	case <-firstCancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("starting a second task should cancel the first")
	}
	assert.Equal(t, 1, r.Len())
	r.StopAll()
}

func TestRegistryReplacementNeverOverlaps(t *testing.T) {
	r := NewRegistry(nil)
	id := uuid.New()

	var exited atomic.Bool
	r.Start(id, func(ctx context.Context) {
		<-ctx.Done()
		// Linger after cancellation so an overlapping replacement would see
		// the old task still alive.
		time.Sleep(20 * time.Millisecond)
		exited.Store(true)
	})

	oldWasGone := make(chan bool, 1)
	r.Start(id, func(ctx context.Context) {
		oldWasGone <- exited.Load()
	})

	select {
	case gone := <-oldWasGone:
		assert.True(t, gone, "replacement must start only after the old task exits")
	case <-time.After(2 * time.Second):
		t.Fatal("replacement task never ran")
	}
	r.StopAll()
}

func TestRegistryStop(t *testing.T) {
	r := NewRegistry(nil)
	id := uuid.New()

	assert.False(t, r.Stop(id), "stopping an unknown id reports no task")

	stopped := make(chan struct{})
	r.Start(id, func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})
	assert.True(t, r.Stop(id))

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("task context was never cancelled")
	}
	assert.Equal(t, 0, r.Len())
}

func TestRegistryStopAllDrains(t *testing.T) {
	r := NewRegistry(nil)
	for i := 0; i < 5; i++ {
		r.Start(uuid.New(), func(ctx context.Context) {
			<-ctx.Done()
		})
	}
	assert.Equal(t, 5, r.Len())
	r.StopAll()
	assert.Equal(t, 0, r.Len())
}

type captureSender struct {
	mu   sync.Mutex
	sent []messaging.Outbound
}

func (c *captureSender) Send(_ context.Context, msg messaging.Outbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureSender) bodies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.sent))
	for _, m := range c.sent {
		out = append(out, m.Body)
	}
	return out
}

type timeoutFunc struct {
	mu      sync.Mutex
	calls   int
	outcome requests.NotificationOutcome
}

func (f *timeoutFunc) HandleResponseTimeout(_ context.Context, _ uuid.UUID) (requests.NotificationOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.outcome, nil
}

func (f *timeoutFunc) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func seedTracked(t *testing.T, repo *requests.InMemoryRepository, status requests.Status) *requests.ServiceRequest {
	t.Helper()
	req := &requests.ServiceRequest{
		UserID:      "+237690000001",
		ServiceType: requests.ServicePlumbing,
		Location:    "Bonamoussadi",
		Status:      status,
		Urgency:     requests.UrgencyNormal,
	}
	require.NoError(t, repo.Create(context.Background(), req))
	return req
}

func TestUpdaterExitsOnTerminalStatus(t *testing.T) {
	repo := requests.NewInMemoryRepository()
	u := NewUpdater(repo, &captureSender{}, &timeoutFunc{}, Config{
		Tick: 5 * time.Millisecond,
	}, nil, nil)
	defer u.Shutdown()

	req := seedTracked(t, repo, requests.StatusCancelled)
	u.Track(req.ID)

	assert.Eventually(t, func() bool { return u.registry.Len() == 0 },
		2*time.Second, 10*time.Millisecond, "task should exit once the request is terminal")
}

func TestUpdaterHandsOffOnTimeout(t *testing.T) {
	repo := requests.NewInMemoryRepository()
	sender := &captureSender{}
	timeouts := &timeoutFunc{outcome: requests.NotificationOutcome{FallbackSent: true}}
	u := NewUpdater(repo, sender, timeouts, Config{
		Tick:            5 * time.Millisecond,
		ResponseTimeout: time.Millisecond,
	}, nil, nil)
	defer u.Shutdown()

	req := seedTracked(t, repo, requests.StatusProviderNotified)
	u.Track(req.ID)

	assert.Eventually(t, func() bool { return timeouts.callCount() == 1 },
		2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return u.registry.Len() == 0 },
		2*time.Second, 10*time.Millisecond, "a resolved ladder ends the task")
}

func TestUpdaterReArmsAfterWidenedRound(t *testing.T) {
	repo := requests.NewInMemoryRepository()
	timeouts := &timeoutFunc{outcome: requests.NotificationOutcome{Round: 2, Delivered: 1}}
	u := NewUpdater(repo, &captureSender{}, timeouts, Config{
		Tick:            5 * time.Millisecond,
		ResponseTimeout: time.Millisecond,
		MaxIterations:   10,
	}, nil, nil)
	defer u.Shutdown()

	req := seedTracked(t, repo, requests.StatusProviderNotified)
	u.Track(req.ID)

	// A widened round keeps the task alive, so the handler fires again on the
	// next expired window until the iteration bound ends the loop.
	assert.Eventually(t, func() bool { return timeouts.callCount() >= 2 },
		2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return u.registry.Len() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestUpdaterCountdownWarnsOnce(t *testing.T) {
	repo := requests.NewInMemoryRepository()
	sender := &captureSender{}
	timeouts := &timeoutFunc{outcome: requests.NotificationOutcome{FallbackSent: true}}
	u := NewUpdater(repo, sender, timeouts, Config{
		Tick:               5 * time.Millisecond,
		ResponseTimeout:    200 * time.Millisecond,
		CountdownThreshold: 190 * time.Millisecond,
		UpdateInterval:     time.Hour,
	}, nil, nil)
	defer u.Shutdown()

	req := seedTracked(t, repo, requests.StatusProviderNotified)
	u.Track(req.ID)

	assert.Eventually(t, func() bool { return timeouts.callCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	warnings := 0
	for _, body := range sender.bodies() {
		if strings.HasPrefix(body, "⏰") {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings, "countdown warning must fire exactly once")
}

func TestUpdaterStopCancelsTask(t *testing.T) {
	repo := requests.NewInMemoryRepository()
	u := NewUpdater(repo, &captureSender{}, &timeoutFunc{}, Config{
		Tick:            50 * time.Millisecond,
		ResponseTimeout: time.Hour,
	}, nil, nil)
	defer u.Shutdown()

	req := seedTracked(t, repo, requests.StatusProviderNotified)
	u.Track(req.ID)
	assert.Eventually(t, func() bool { return u.registry.Len() == 1 },
		2*time.Second, 10*time.Millisecond)

	u.Stop(req.ID)
	assert.Eventually(t, func() bool { return u.registry.Len() == 0 },
		2*time.Second, 10*time.Millisecond)
}
