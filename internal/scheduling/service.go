package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// Option is one offerable scheduling preference with its concrete window
// and urgency supplement.
type Option struct {
	Preference Preference `json:"preference"`
	Label      string     `json:"label"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Supplement int        `json:"supplement"`
}

// Service computes scheduling options and persists chosen preferences.
type Service struct {
	requests requests.Repository
	slots    SlotStore
	logger   *logging.Logger
	now      func() time.Time
}

// NewService creates a scheduling service.
func NewService(reqRepo requests.Repository, slots SlotStore, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		requests: reqRepo,
		slots:    slots,
		logger:   logger.Named("scheduling"),
		now:      time.Now,
	}
}

// GetSchedulingOptions enumerates every currently offerable preference for
// the service/location, with concrete windows in Douala local time.
func (s *Service) GetSchedulingOptions(serviceType, location string) []Option {
	now := s.now()
	out := make([]Option, 0, len(Preferences()))
	for _, p := range Preferences() {
		start, end, ok := Window(p, now)
		if !ok {
			continue
		}
		out = append(out, Option{
			Preference: p,
			Label:      p.Label(),
			Start:      start,
			End:        end,
			Supplement: p.Supplement(),
		})
	}
	return out
}

// ApplyScheduling persists the chosen preference, derived window, supplement
// and coarse urgency label onto the request.
func (s *Service) ApplyScheduling(ctx context.Context, requestID uuid.UUID, pref Preference) (*requests.ServiceRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: load request: %w", err)
	}

	start, end, ok := Window(pref, s.now())
	if !ok {
		return nil, fmt.Errorf("scheduling: preference %s not offerable now", pref)
	}

	req.SchedulingPreference = string(pref)
	req.PreferredStart = &start
	req.PreferredEnd = &end
	req.UrgencySupplement = pref.Supplement()
	req.Urgency = pref.Urgency()

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("scheduling: persist preference: %w", err)
	}

	s.logger.Info("scheduling applied",
		"request_id", req.ID,
		"preference", pref,
		"supplement", req.UrgencySupplement,
		"urgency", req.Urgency,
	)
	return req, nil
}

var _ requests.Booker = (*Service)(nil)

// BookAppointment records the slot for the winning provider. Called by the
// lifecycle service right after an acceptance.
func (s *Service) BookAppointment(ctx context.Context, req *requests.ServiceRequest) error {
	slot, err := s.BookSlot(ctx, req)
	if err != nil {
		return err
	}
	if slot != nil {
		s.logger.Info("appointment slot booked",
			"request_id", req.ID, "slot_id", slot.ID,
			"start", slot.Start, "end", slot.End)
	}
	return nil
}

// ReleaseAppointments cancels every open slot held by the request.
func (s *Service) ReleaseAppointments(ctx context.Context, requestID uuid.UUID) error {
	if s.slots == nil {
		return nil
	}
	slots, err := s.slots.ListByRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("scheduling: release slots: %w", err)
	}
	for _, slot := range slots {
		if slot.Status == SlotCancelled {
			continue
		}
		if err := s.slots.SetStatus(ctx, slot.ID, SlotCancelled); err != nil {
			return fmt.Errorf("scheduling: cancel slot %s: %w", slot.ID, err)
		}
	}
	return nil
}

// BookSlot records the appointment window once a provider is assigned.
func (s *Service) BookSlot(ctx context.Context, req *requests.ServiceRequest) (*AppointmentSlot, error) {
	if s.slots == nil || req.ProviderID == nil || req.PreferredStart == nil || req.PreferredEnd == nil {
		return nil, nil
	}
	slot := &AppointmentSlot{
		RequestID:  req.ID,
		ProviderID: *req.ProviderID,
		Start:      *req.PreferredStart,
		End:        *req.PreferredEnd,
		Status:     SlotPending,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("scheduling: book slot: %w", err)
	}
	return slot, nil
}
