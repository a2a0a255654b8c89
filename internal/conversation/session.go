package conversation

import (
	"time"

	"github.com/google/uuid"
)

// CollectedData is what the flow has gathered toward a service request.
type CollectedData struct {
	ServiceType          string     `json:"service_type,omitempty"`
	Location             string     `json:"location,omitempty"`
	LandmarkRefs         []string   `json:"landmark_refs,omitempty"`
	LocationConfirmed    bool       `json:"location_confirmed,omitempty"`
	PendingLocation      string     `json:"pending_location,omitempty"`
	Description          string     `json:"description,omitempty"`
	SchedulingPreference string     `json:"scheduling_preference,omitempty"`
	Urgency              string     `json:"urgency,omitempty"`
	UrgencySupplement    int        `json:"urgency_supplement,omitempty"`
	EstimatedCost        int        `json:"estimated_cost,omitempty"`
	PaymentMethod        string     `json:"payment_method,omitempty"`
	RequestID            *uuid.UUID `json:"request_id,omitempty"`
	// ReturnState is where an aborted cancellation sub-flow resumes.
	ReturnState State `json:"return_state,omitempty"`
}

// Complete reports whether enough has been collected to open a request.
func (d *CollectedData) Complete() bool {
	return d.ServiceType != "" && d.Location != "" && d.Description != "" &&
		d.SchedulingPreference != ""
}

// Session is one user's conversation, keyed by phone number.
type Session struct {
	ID     string        `json:"id"`
	UserID string        `json:"user_id"` // phone number in E.164
	State  State         `json:"state"`
	Data   CollectedData `json:"data"`
	// LastMessageID and LastReply make duplicate webhook deliveries replay
	// the previous answer instead of re-running the transition.
	LastMessageID string    `json:"last_message_id,omitempty"`
	LastReply     *Reply    `json:"last_reply,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSession opens a fresh session at the INITIAL state.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     StateInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset clears collected data and rewinds to INITIAL, keeping the session id.
func (s *Session) Reset() {
	s.State = StateInitial
	s.Data = CollectedData{}
}
