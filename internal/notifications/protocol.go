package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/djobea/djobea-ai/internal/messaging"
	"github.com/djobea/djobea-ai/internal/observability/metrics"
	"github.com/djobea/djobea-ai/internal/pricing"
	"github.com/djobea/djobea-ai/internal/providers"
	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// ProtocolConfig carries the notification ladder knobs.
type ProtocolConfig struct {
	// BatchSize is how many ranked candidates each round notifies.
	BatchSize int
	// MaxRounds bounds the widened-search rounds before the ladder degrades.
	MaxRounds int
	// FallbackContacts is how many providers the pull-based contact list shows.
	FallbackContacts int
	// ResponseTimeout is how long a round waits for an acceptance.
	ResponseTimeout time.Duration
	// Support is the human escalation channel shown in emergency messages.
	Support SupportContact
}

func (c *ProtocolConfig) normalize() {
	if c.BatchSize <= 0 {
		c.BatchSize = 3
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = 2
	}
	if c.FallbackContacts <= 0 {
		c.FallbackContacts = 3
	}
	if c.ResponseTimeout <= 0 {
		c.ResponseTimeout = 10 * time.Minute
	}
}

// Escalator hands a stranded request to the operations team.
type Escalator interface {
	EscalateRequest(ctx context.Context, req *requests.ServiceRequest, reason string)
}

// Protocol pushes offers to ranked providers and degrades through the
// fallback ladder when pushes cannot be delivered.
type Protocol struct {
	matcher   *providers.Matcher
	attempts  AttemptStore
	sender    messaging.Sender
	pricing   *pricing.Table
	repo      requests.Repository
	escalator Escalator
	cfg       ProtocolConfig
	logger    *logging.Logger
	metrics   *metrics.NotificationMetrics
}

// NewProtocol wires the notification protocol. escalator and metrics may be nil.
func NewProtocol(
	matcher *providers.Matcher,
	attempts AttemptStore,
	sender messaging.Sender,
	table *pricing.Table,
	repo requests.Repository,
	escalator Escalator,
	cfg ProtocolConfig,
	logger *logging.Logger,
	m *metrics.NotificationMetrics,
) *Protocol {
	if matcher == nil || attempts == nil || sender == nil || repo == nil {
		panic("notifications: matcher, attempts, sender and repo are required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg.normalize()
	return &Protocol{
		matcher:   matcher,
		attempts:  attempts,
		sender:    sender,
		pricing:   table,
		repo:      repo,
		escalator: escalator,
		cfg:       cfg,
		logger:    logger.Named("notifications"),
		metrics:   m,
	}
}

var _ requests.Notifier = (*Protocol)(nil)

// ResponseTimeout exposes the configured per-round wait so the proactive
// scheduler and the protocol always agree on the deadline.
func (p *Protocol) ResponseTimeout() time.Duration {
	return p.cfg.ResponseTimeout
}

// NotifyProviders runs the next notification round for the request and, when
// nothing can be pushed, walks the fallback ladder. The request's lifecycle
// status is owned by the caller; the protocol only sets the failure sub-status.
func (p *Protocol) NotifyProviders(ctx context.Context, req *requests.ServiceRequest) (requests.NotificationOutcome, error) {
	last, err := p.attempts.MaxRound(ctx, req.ID)
	if err != nil {
		return requests.NotificationOutcome{}, err
	}
	return p.runRound(ctx, req, last+1)
}

// HandleResponseTimeout is invoked when a round's response window elapses with
// zero acceptances: widen to the next ranked batch while rounds remain, then
// degrade through the ladder.
func (p *Protocol) HandleResponseTimeout(ctx context.Context, requestID uuid.UUID) (requests.NotificationOutcome, error) {
	req, err := p.repo.GetByID(ctx, requestID)
	if err != nil {
		return requests.NotificationOutcome{}, err
	}
	if req.Status != requests.StatusProviderNotified {
		// Accepted or closed while the timer was in flight; nothing to do.
		return requests.NotificationOutcome{Round: 0}, nil
	}

	last, err := p.attempts.MaxRound(ctx, requestID)
	if err != nil {
		return requests.NotificationOutcome{}, err
	}
	if last >= p.cfg.MaxRounds {
		p.logger.Info("notification rounds exhausted", "request_id", requestID, "rounds", last)
		return p.degrade(ctx, req)
	}
	p.observeLadder("widened")
	p.logger.Info("widening provider search", "request_id", requestID, "round", last+1)
	return p.runRound(ctx, req, last+1)
}

// runRound pushes offers to the round's slice of the ranked candidate list.
func (p *Protocol) runRound(ctx context.Context, req *requests.ServiceRequest, round int) (requests.NotificationOutcome, error) {
	ranked, err := p.matcher.FindCandidates(ctx, req.ServiceType, req.Location, round*p.cfg.BatchSize)
	if err != nil {
		return requests.NotificationOutcome{}, fmt.Errorf("notifications: round %d: %w", round, err)
	}

	start := (round - 1) * p.cfg.BatchSize
	if start >= len(ranked) {
		// The widened search found nobody new; degrade immediately.
		return p.degrade(ctx, req)
	}
	batch := ranked[start:]

	outcome := requests.NotificationOutcome{Round: round}
	est := p.estimate(ctx, req)
	offer := ComposeOffer(req, est)

	for i := range batch {
		prov := &batch[i]
		sendErr := p.sender.Send(ctx, messaging.Outbound{
			To:   prov.ContactAddress(),
			Body: offer,
			Metadata: map[string]string{
				"request_id":  req.ID.String(),
				"provider_id": prov.ID.String(),
			},
		})

		attempt := Attempt{
			RequestID:  req.ID,
			ProviderID: prov.ID,
			Round:      round,
			Outcome:    AttemptDelivered,
		}
		if sendErr != nil {
			attempt.Outcome = AttemptChannelError
			attempt.Error = sendErr.Error()
			p.logger.Warn("provider offer undeliverable",
				"request_id", req.ID, "provider_id", prov.ID, "error", sendErr)
		}
		if err := p.attempts.Create(ctx, &attempt); err != nil {
			p.logger.Error("attempt record write failed", "request_id", req.ID, "error", err)
		}
		p.observeAttempt(string(attempt.Outcome))

		outcome.Attempted++
		if sendErr == nil {
			outcome.Delivered++
		}
	}

	if outcome.Delivered > 0 {
		p.observeLadder("delivered")
		p.logger.Info("offers delivered, awaiting responses",
			"request_id", req.ID, "round", round, "delivered", outcome.Delivered)
		return outcome, nil
	}

	// Every push in the round hit a channel failure.
	degraded, err := p.degrade(ctx, req)
	degraded.Round = round
	degraded.Attempted = outcome.Attempted
	return degraded, err
}

// degrade walks the non-push rungs: contact list when eligible providers
// exist, emergency handoff when none do.
func (p *Protocol) degrade(ctx context.Context, req *requests.ServiceRequest) (requests.NotificationOutcome, error) {
	eligible, err := p.matcher.FindCandidates(ctx, req.ServiceType, req.Location, p.cfg.FallbackContacts)
	if err != nil {
		return requests.NotificationOutcome{}, fmt.Errorf("notifications: fallback lookup: %w", err)
	}

	if len(eligible) > 0 {
		body := ComposeFallbackContacts(req, eligible, p.estimate(ctx, req))
		if err := p.sender.Send(ctx, messaging.Outbound{To: req.UserID, Body: body}); err != nil {
			p.logger.Error("fallback contact list undeliverable", "request_id", req.ID, "error", err)
			return p.emergency(ctx, req)
		}
		p.observeLadder("fallback_contacts")
		p.logger.Info("fallback contact list sent", "request_id", req.ID, "contacts", len(eligible))
		return requests.NotificationOutcome{FallbackSent: true}, nil
	}

	return p.emergency(ctx, req)
}

// emergency is the last rung: tell the user how to reach a human and flag the
// request for manual follow-up.
func (p *Protocol) emergency(ctx context.Context, req *requests.ServiceRequest) (requests.NotificationOutcome, error) {
	body := ComposeEmergency(req, p.cfg.Support)
	if err := p.sender.Send(ctx, messaging.Outbound{To: req.UserID, Body: body}); err != nil {
		p.logger.Error("emergency message undeliverable", "request_id", req.ID, "error", err)
	}

	req.SubStatus = requests.SubStatusNotificationFailed
	if err := p.repo.Update(ctx, req); err != nil {
		p.logger.Error("failure sub-status write failed", "request_id", req.ID, "error", err)
	}

	if p.escalator != nil {
		p.escalator.EscalateRequest(ctx, req, "aucun prestataire éligible")
	}
	p.observeLadder("emergency")
	p.logger.Warn("notification ladder exhausted", "request_id", req.ID, "reference", req.Reference())
	return requests.NotificationOutcome{EmergencySent: true}, nil
}

func (p *Protocol) estimate(ctx context.Context, req *requests.ServiceRequest) pricing.Estimate {
	if p.pricing == nil {
		return pricing.Estimate{}
	}
	return p.pricing.GetEstimate(ctx, req.ServiceType)
}

func (p *Protocol) observeAttempt(outcome string) {
	p.metrics.ObserveAttempt(outcome)
}

func (p *Protocol) observeLadder(rung string) {
	p.metrics.ObserveLadder(rung)
}
