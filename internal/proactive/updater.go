package proactive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/djobea/djobea-ai/internal/messaging"
	"github.com/djobea/djobea-ai/internal/observability/metrics"
	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// TimeoutHandler widens or degrades the provider search when the response
// window elapses. Implemented by the notification protocol.
type TimeoutHandler interface {
	HandleResponseTimeout(ctx context.Context, requestID uuid.UUID) (requests.NotificationOutcome, error)
}

// Config carries the update-loop knobs.
type Config struct {
	// Tick is the loop interval for normal requests.
	Tick time.Duration
	// UrgentTick is the faster interval for urgent requests.
	UrgentTick time.Duration
	// UpdateInterval is how often the user gets a status update message.
	UpdateInterval time.Duration
	// ResponseTimeout is the per-round provider response window.
	ResponseTimeout time.Duration
	// CountdownThreshold is how close to the deadline the one-time
	// countdown warning fires.
	CountdownThreshold time.Duration
	// MaxIterations bounds the loop so an orphaned task always exits.
	MaxIterations int
}

func (c *Config) normalize() {
	if c.Tick <= 0 {
		c.Tick = 30 * time.Second
	}
	if c.UrgentTick <= 0 {
		c.UrgentTick = 15 * time.Second
	}
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = 2 * time.Minute
	}
	if c.ResponseTimeout <= 0 {
		c.ResponseTimeout = 10 * time.Minute
	}
	if c.CountdownThreshold <= 0 {
		c.CountdownThreshold = 3 * time.Minute
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = 120
	}
}

// Updater keeps the customer informed while a request waits for a provider:
// periodic status updates, a one-time countdown warning, and the timeout
// handoff when the response window closes.
type Updater struct {
	repo     requests.Repository
	sender   messaging.Sender
	timeouts TimeoutHandler
	registry *Registry
	cfg      Config
	logger   *logging.Logger
	metrics  *metrics.ProactiveMetrics
	now      func() time.Time
}

// NewUpdater wires the proactive updater. metrics may be nil.
func NewUpdater(repo requests.Repository, sender messaging.Sender, timeouts TimeoutHandler, cfg Config, logger *logging.Logger, m *metrics.ProactiveMetrics) *Updater {
	if repo == nil || sender == nil || timeouts == nil {
		panic("proactive: repo, sender and timeout handler are required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg.normalize()
	return &Updater{
		repo:     repo,
		sender:   sender,
		timeouts: timeouts,
		registry: NewRegistry(logger),
		cfg:      cfg,
		logger:   logger.Named("proactive"),
		metrics:  m,
		now:      time.Now,
	}
}

var _ requests.Tracker = (*Updater)(nil)

// Track starts (or restarts) the follow-up task for the request.
func (u *Updater) Track(requestID uuid.UUID) {
	u.registry.Start(requestID, func(ctx context.Context) {
		u.metrics.TaskStarted()
		defer u.metrics.TaskStopped()
		u.run(ctx, requestID)
	})
}

// Stop cancels the follow-up task for the request.
func (u *Updater) Stop(requestID uuid.UUID) {
	u.registry.Stop(requestID)
}

// Shutdown cancels every running task and waits for them to exit.
func (u *Updater) Shutdown() {
	u.registry.StopAll()
}

func (u *Updater) run(ctx context.Context, requestID uuid.UUID) {
	req, err := u.repo.GetByID(ctx, requestID)
	if err != nil {
		u.logger.Warn("task aborted, request unreadable", "request_id", requestID, "error", err)
		return
	}

	tick := u.cfg.Tick
	if req.Urgency == requests.UrgencyUrgent {
		tick = u.cfg.UrgentTick
	}
	timer := time.NewTicker(tick)
	defer timer.Stop()

	deadline := u.now().Add(u.cfg.ResponseTimeout)
	lastUpdate := u.now()
	warned := false

	for i := 0; i < u.cfg.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			u.observeTick("cancelled")
			return
		case <-timer.C:
		}

		req, err = u.repo.GetByID(ctx, requestID)
		if err != nil {
			u.observeTick("read_error")
			u.logger.Warn("request re-read failed", "request_id", requestID, "error", err)
			continue
		}
		if req.Status.IsTerminal() {
			u.observeTick("terminal")
			u.logger.Debug("task exiting on terminal status", "request_id", requestID, "status", req.Status)
			return
		}

		if req.Status == requests.StatusProviderNotified {
			now := u.now()
			remaining := deadline.Sub(now)

			if remaining <= 0 {
				u.observeTick("timeout")
				outcome, err := u.timeouts.HandleResponseTimeout(ctx, requestID)
				if err != nil {
					u.logger.Error("timeout handling failed", "request_id", requestID, "error", err)
					return
				}
				if outcome.FallbackSent || outcome.EmergencySent || outcome.Round == 0 {
					// Ladder resolved (or the request moved on); this task is done.
					return
				}
				// A widened round is out; arm a fresh response window.
				deadline = u.now().Add(u.cfg.ResponseTimeout)
				warned = false
				continue
			}

			if !warned && remaining <= u.cfg.CountdownThreshold {
				warned = true
				u.observeTick("countdown")
				u.send(ctx, req, fmt.Sprintf(
					"⏰ Toujours en attente d'un prestataire pour %s. Nous élargissons la recherche dans %d minutes si personne ne répond.",
					req.Reference(), int(remaining.Round(time.Minute)/time.Minute)))
				continue
			}
		}

		if u.now().Sub(lastUpdate) >= u.cfg.UpdateInterval {
			lastUpdate = u.now()
			u.observeTick("update")
			u.send(ctx, req, requests.StatusSummary(req))
			continue
		}
		u.observeTick("idle")
	}
	u.logger.Warn("task hit iteration bound", "request_id", requestID)
}

func (u *Updater) send(ctx context.Context, req *requests.ServiceRequest, body string) {
	if err := u.sender.Send(ctx, messaging.Outbound{To: req.UserID, Body: body}); err != nil {
		u.logger.Warn("proactive message failed", "request_id", req.ID, "error", err)
	}
}

func (u *Updater) observeTick(decision string) {
	u.metrics.ObserveTick(decision)
}
