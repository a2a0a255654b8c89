package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/djobea/djobea-ai/internal/messaging"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// NotificationOutcome summarizes one notification round for a request.
type NotificationOutcome struct {
	Round         int
	Attempted     int
	Delivered     int
	FallbackSent  bool
	EmergencySent bool
}

// Notifier pushes offers to candidate providers. Implemented by the
// notification protocol; declared here so the lifecycle service does not
// depend on that package.
type Notifier interface {
	NotifyProviders(ctx context.Context, req *ServiceRequest) (NotificationOutcome, error)
}

// Tracker starts and stops the proactive follow-up task for a request.
type Tracker interface {
	Track(requestID uuid.UUID)
	Stop(requestID uuid.UUID)
}

// Booker persists the appointment slot once a provider is assigned and
// releases it again on cancellation. Implemented by the scheduling service;
// declared here so the lifecycle service does not depend on that package.
type Booker interface {
	BookAppointment(ctx context.Context, req *ServiceRequest) error
	ReleaseAppointments(ctx context.Context, requestID uuid.UUID) error
}

// Service owns every lifecycle transition of a service request. All status
// moves go through here so the DAG is enforced in exactly one place.
type Service struct {
	repo     Repository
	notifier Notifier
	tracker  Tracker
	sender   messaging.Sender
	booker   Booker
	logger   *logging.Logger
	now      func() time.Time
}

// NewService builds the lifecycle orchestrator. tracker, sender and booker
// may be nil.
func NewService(repo Repository, notifier Notifier, tracker Tracker, sender messaging.Sender, booker Booker, logger *logging.Logger) *Service {
	if repo == nil {
		panic("requests: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		tracker:  tracker,
		sender:   sender,
		booker:   booker,
		logger:   logger.Named("requests"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest validates the collected fields and opens a PENDING request.
func (s *Service) CreateRequest(ctx context.Context, in CreateInput) (*ServiceRequest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	urgency := in.Urgency
	if urgency == "" {
		urgency = UrgencyNormal
	}
	req := &ServiceRequest{
		ID:                   uuid.New(),
		UserID:               strings.TrimSpace(in.UserID),
		ServiceType:          strings.ToLower(strings.TrimSpace(in.ServiceType)),
		Description:          strings.TrimSpace(in.Description),
		Location:             strings.TrimSpace(in.Location),
		LandmarkRefs:         in.LandmarkRefs,
		LocationConfirmed:    in.LocationConfirmed,
		SchedulingPreference: in.SchedulingPreference,
		Urgency:              urgency,
		UrgencySupplement:    in.UrgencySupplement,
		EstimatedCost:        in.EstimatedCost,
		Status:               StatusPending,
		CreatedAt:            s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("requests: create: %w", err)
	}
	s.logger.Info("request created",
		"request_id", req.ID, "reference", req.Reference(),
		"service", req.ServiceType, "urgency", req.Urgency)
	return req, nil
}

// GetRequest loads a request by id.
func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	return s.repo.GetByID(ctx, id)
}

// FindActiveByUser returns the user's current non-terminal request, or nil.
func (s *Service) FindActiveByUser(ctx context.Context, userID string) (*ServiceRequest, error) {
	return s.repo.FindActiveByUser(ctx, userID)
}

// FindAndNotify runs the first notification round and moves the request to
// PROVIDER_NOTIFIED. The move happens even when the ladder already degraded to
// its fallback rungs: the user has been told something, and the follow-up task
// owns what happens next.
func (s *Service) FindAndNotify(ctx context.Context, id uuid.UUID) (NotificationOutcome, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return NotificationOutcome{}, err
	}
	if req.Status != StatusPending {
		return NotificationOutcome{}, ErrInvalidTransition
	}
	if s.notifier == nil {
		return NotificationOutcome{}, fmt.Errorf("requests: no notifier configured")
	}

	outcome, err := s.notifier.NotifyProviders(ctx, req)
	if err != nil {
		return outcome, fmt.Errorf("requests: notify providers: %w", err)
	}

	if _, err := s.repo.UpdateStatusFrom(ctx, id, []Status{StatusPending}, StatusProviderNotified); err != nil {
		return outcome, fmt.Errorf("requests: mark notified: %w", err)
	}
	if s.tracker != nil {
		s.tracker.Track(id)
	}
	return outcome, nil
}

// Accept assigns the provider atomically. Exactly one concurrent acceptance
// wins; every other caller gets ErrAlreadyAssigned.
func (s *Service) Accept(ctx context.Context, requestID, providerID uuid.UUID) (*ServiceRequest, error) {
	req, err := s.repo.AcceptIfUnassigned(ctx, requestID, providerID, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("request accepted",
		"request_id", requestID, "provider_id", providerID, "reference", req.Reference())
	if s.booker != nil {
		if err := s.booker.BookAppointment(ctx, req); err != nil {
			s.logger.Warn("slot booking failed", "request_id", requestID, "error", err)
		}
	}
	s.notifyUser(ctx, req, fmt.Sprintf(
		"✅ Bonne nouvelle ! Un prestataire a accepté votre demande %s. Il vous contacte très vite.",
		req.Reference()))
	return req, nil
}

// Decline records a provider's refusal. The round is not widened here: the
// next round starts only when the round timer fires with zero acceptances.
func (s *Service) Decline(ctx context.Context, requestID, providerID uuid.UUID, reason string) error {
	if _, err := s.repo.GetByID(ctx, requestID); err != nil {
		return err
	}
	s.logger.Info("provider declined",
		"request_id", requestID, "provider_id", providerID, "reason", reason)
	return nil
}

// UpdateStatus applies a forward-only transition through the lifecycle DAG.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (*ServiceRequest, error) {
	from := predecessorsOf(to)
	if len(from) == 0 {
		return nil, ErrInvalidTransition
	}
	req, err := s.repo.UpdateStatusFrom(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	s.logger.Info("request status updated", "request_id", id, "status", to)
	if to.IsTerminal() && s.tracker != nil {
		s.tracker.Stop(id)
	}
	return req, nil
}

// Cancel closes the request from one of the cancellable states, records the
// reason and stops the proactive follow-up task.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*ServiceRequest, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.IsCancellable() {
		return nil, ErrNotCancellable
	}

	req, err := s.repo.UpdateStatusFrom(ctx, id,
		[]Status{StatusPending, StatusProviderNotified, StatusAssigned}, StatusCancelled)
	if err != nil {
		return nil, err
	}
	req.CancellationReason = strings.TrimSpace(reason)
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("requests: record cancellation reason: %w", err)
	}
	if s.tracker != nil {
		s.tracker.Stop(id)
	}
	if s.booker != nil {
		if err := s.booker.ReleaseAppointments(ctx, id); err != nil {
			s.logger.Warn("slot release failed", "request_id", id, "error", err)
		}
	}
	s.logger.Info("request cancelled", "request_id", id, "reason", req.CancellationReason)
	return req, nil
}

// HandleProviderResponse translates an accept/decline webhook into lifecycle
// calls and returns the reply text for the provider.
func (s *Service) HandleProviderResponse(ctx context.Context, requestID, providerID uuid.UUID, accepted bool) (string, error) {
	if !accepted {
		if err := s.Decline(ctx, requestID, providerID, "refus du prestataire"); err != nil {
			return "", err
		}
		return "Refus enregistré. Merci pour votre réponse.", nil
	}

	req, err := s.Accept(ctx, requestID, providerID)
	if err == ErrAlreadyAssigned {
		return "Cette demande a déjà été prise par un autre prestataire.", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"✅ Demande %s confirmée pour vous. Contactez le client au %s.",
		req.Reference(), req.UserID), nil
}

// GetRequestStatusSummary renders the user-facing status line for a request.
func (s *Service) GetRequestStatusSummary(ctx context.Context, id uuid.UUID) (string, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return StatusSummary(req), nil
}

// StatusSummary maps a request to its user-facing French status line.
func StatusSummary(req *ServiceRequest) string {
	ref := req.Reference()
	switch req.Status {
	case StatusPending:
		return fmt.Sprintf("⏳ Demande %s enregistrée. Recherche de prestataire en cours.", ref)
	case StatusProviderNotified:
		if req.SubStatus == SubStatusNotificationFailed {
			return fmt.Sprintf("⚠️ Demande %s transmise à notre équipe, un agent vous recontacte.", ref)
		}
		return fmt.Sprintf("📣 Demande %s envoyée aux prestataires. Réponse en attente.", ref)
	case StatusAssigned:
		return fmt.Sprintf("🤝 Un prestataire a pris votre demande %s. Il vous contacte.", ref)
	case StatusInProgress:
		return fmt.Sprintf("🔧 Intervention en cours pour la demande %s.", ref)
	case StatusCompleted:
		return fmt.Sprintf("✅ Demande %s terminée. Merci d'avoir choisi Djobea !", ref)
	case StatusCancelled:
		return fmt.Sprintf("❌ Demande %s annulée.", ref)
	case StatusPaymentPending:
		return fmt.Sprintf("💳 Paiement en attente pour la demande %s.", ref)
	case StatusPaymentCompleted:
		return fmt.Sprintf("✅ Paiement reçu pour la demande %s. À bientôt !", ref)
	default:
		return fmt.Sprintf("Demande %s : statut %s.", ref, req.Status)
	}
}

// notifyUser best-effort messages the customer; failures are logged only.
func (s *Service) notifyUser(ctx context.Context, req *ServiceRequest, body string) {
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(ctx, messaging.Outbound{To: req.UserID, Body: body}); err != nil {
		s.logger.Warn("user notification failed", "request_id", req.ID, "error", err)
	}
}

// predecessorsOf inverts the lifecycle graph for guarded status updates.
func predecessorsOf(to Status) []Status {
	var from []Status
	for s, nexts := range statusGraph {
		for _, n := range nexts {
			if n == to {
				from = append(from, s)
			}
		}
	}
	return from
}
