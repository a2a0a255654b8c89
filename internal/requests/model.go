package requests

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Supported service types for the Douala marketplace.
const (
	ServicePlumbing  = "plomberie"
	ServiceElectric  = "électricité"
	ServiceAppliance = "électroménager"
)

// ServiceTypes returns the closed set of bookable service types.
func ServiceTypes() []string {
	return []string{ServicePlumbing, ServiceElectric, ServiceAppliance}
}

// IsSupportedService reports whether the service type is bookable.
func IsSupportedService(service string) bool {
	service = strings.ToLower(strings.TrimSpace(service))
	for _, s := range ServiceTypes() {
		if s == service {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of a service request.
type Status string

const (
	StatusPending          Status = "pending"
	StatusProviderNotified Status = "provider_notified"
	StatusAssigned         Status = "assigned"
	StatusInProgress       Status = "in_progress"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
	StatusPaymentPending   Status = "payment_pending"
	StatusPaymentCompleted Status = "payment_completed"
)

// SubStatusNotificationFailed marks a request whose notification ladder was
// exhausted and needs manual follow-up.
const SubStatusNotificationFailed = "notification_failed"

// statusGraph lists the forward transitions reachable from each status.
var statusGraph = map[Status][]Status{
	StatusPending:          {StatusProviderNotified, StatusCancelled},
	StatusProviderNotified: {StatusAssigned, StatusCancelled},
	StatusAssigned:         {StatusInProgress, StatusCancelled},
	StatusInProgress:       {StatusCompleted},
	StatusCompleted:        {StatusPaymentPending},
	StatusPaymentPending:   {StatusPaymentCompleted},
}

// CanTransition reports whether moving from one status to another follows the
// lifecycle graph. Backward moves are never allowed.
func CanTransition(from, to Status) bool {
	for _, next := range statusGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the request lifecycle.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusPaymentCompleted:
		return true
	}
	return false
}

// IsCancellable reports whether a user/admin cancel is still allowed.
// A request already being worked must be escalated, not cancelled.
func (s Status) IsCancellable() bool {
	switch s {
	case StatusPending, StatusProviderNotified, StatusAssigned:
		return true
	}
	return false
}

// Urgency labels derived from the scheduling preference.
const (
	UrgencyUrgent   = "urgent"
	UrgencyNormal   = "normal"
	UrgencyFlexible = "flexible"
)

// ServiceRequest is a customer's single job ask.
type ServiceRequest struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               string     `json:"user_id"` // phone number in E.164
	ProviderID           *uuid.UUID `json:"provider_id,omitempty"`
	ServiceType          string     `json:"service_type"`
	Description          string     `json:"description"`
	Location             string     `json:"location"`
	LandmarkRefs         []string   `json:"landmark_refs,omitempty"`
	LocationConfirmed    bool       `json:"location_confirmed"`
	LocationLat          *float64   `json:"location_lat,omitempty"`
	LocationLng          *float64   `json:"location_lng,omitempty"`
	SchedulingPreference string     `json:"scheduling_preference,omitempty"`
	PreferredStart       *time.Time `json:"preferred_start,omitempty"`
	PreferredEnd         *time.Time `json:"preferred_end,omitempty"`
	Urgency              string     `json:"urgency"`
	UrgencySupplement    int        `json:"urgency_supplement"` // XAF, >= 0
	Status               Status     `json:"status"`
	SubStatus            string     `json:"sub_status,omitempty"`
	CancellationReason   string     `json:"cancellation_reason,omitempty"`
	EstimatedCost        int        `json:"estimated_cost,omitempty"`
	FinalCost            int        `json:"final_cost,omitempty"`
	CommissionAmount     int        `json:"commission_amount,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	AcceptedAt           *time.Time `json:"accepted_at,omitempty"`
	ScheduledAt          *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

// Reference returns the short id shown to users and providers.
func (r *ServiceRequest) Reference() string {
	id := r.ID.String()
	if len(id) >= 8 {
		return "DJB-" + strings.ToUpper(id[:8])
	}
	return "DJB-" + strings.ToUpper(id)
}

// CreateInput carries the extracted fields needed to open a request.
type CreateInput struct {
	UserID               string
	ServiceType          string
	Description          string
	Location             string
	LandmarkRefs         []string
	LocationConfirmed    bool
	Urgency              string
	SchedulingPreference string
	UrgencySupplement    int
	EstimatedCost        int
}

// Validate checks the input against the supported catalogue.
func (in *CreateInput) Validate() error {
	if strings.TrimSpace(in.UserID) == "" {
		return ErrMissingUser
	}
	if !IsSupportedService(in.ServiceType) {
		return ErrUnsupportedService
	}
	if strings.TrimSpace(in.Location) == "" {
		return ErrMissingLocation
	}
	return nil
}
