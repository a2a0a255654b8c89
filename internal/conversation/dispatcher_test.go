package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoProcessor struct {
	mu    sync.Mutex
	seen  int
	delay time.Duration
}

func (p *echoProcessor) ProcessMessage(_ context.Context, in Input) (*Reply, error) {
	p.mu.Lock()
	p.seen++
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return &Reply{Text: "echo: " + in.Text, State: StateInitial, Action: ActionSendMessage}, nil
}

func (p *echoProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen
}

func TestDispatcherRoundTrip(t *testing.T) {
	processor := &echoProcessor{}
	d := NewDispatcher(processor, NewMemoryQueue(0), nil, WithReceiveWaitSeconds(1))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = d.Shutdown(ctx)
	}()

	reply, err := d.ProcessMessage(context.Background(), Input{UserID: testUser, Text: "bonjour"})
	require.NoError(t, err)
	assert.Equal(t, "echo: bonjour", reply.Text)
	assert.Equal(t, 1, processor.count())
}

func TestDispatcherConcurrentTurns(t *testing.T) {
	processor := &echoProcessor{}
	d := NewDispatcher(processor, NewMemoryQueue(0), nil, WithWorkerCount(4), WithReceiveWaitSeconds(1))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = d.Shutdown(ctx)
	}()

	const turns = 20
	var wg sync.WaitGroup
	errs := make(chan error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("message %d", i)
			reply, err := d.ProcessMessage(context.Background(), Input{UserID: testUser, Text: text})
			if err != nil {
				errs <- err
				return
			}
			if reply.Text != "echo: "+text {
				errs <- fmt.Errorf("caller %d got someone else's reply: %q", i, reply.Text)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, turns, processor.count())
}

func TestDispatcherCallerContextCancellation(t *testing.T) {
	processor := &echoProcessor{delay: 500 * time.Millisecond}
	d := NewDispatcher(processor, NewMemoryQueue(0), nil, WithReceiveWaitSeconds(1))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = d.Shutdown(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := d.ProcessMessage(ctx, Input{UserID: testUser, Text: "lent"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueueReceiveTimesOut(t *testing.T) {
	q := NewMemoryQueue(0)
	start := time.Now()
	messages, err := q.Receive(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestMemoryQueueBatchesAvailableMessages(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(8)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Send(ctx, fmt.Sprintf("m%d", i)))
	}

	messages, err := q.Receive(ctx, 5, 1)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
	for _, m := range messages {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.ReceiptHandle)
	}
}
