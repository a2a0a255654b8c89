package notifications

import (
	"context"
	"time"

	"github.com/djobea/djobea-ai/internal/notify"
	"github.com/djobea/djobea-ai/internal/requests"
)

// EmailEscalator forwards ladder-exhausted requests to the operations inbox.
type EmailEscalator struct {
	svc *notify.EscalationService
}

// NewEmailEscalator wraps the escalation email service. svc may be nil.
func NewEmailEscalator(svc *notify.EscalationService) *EmailEscalator {
	return &EmailEscalator{svc: svc}
}

var _ Escalator = (*EmailEscalator)(nil)

// EscalateRequest emails a manual-follow-up summary for the request.
func (e *EmailEscalator) EscalateRequest(ctx context.Context, req *requests.ServiceRequest, reason string) {
	if e == nil || e.svc == nil {
		return
	}
	e.svc.Escalate(ctx, notify.Escalation{
		RequestReference: req.Reference(),
		UserPhone:        req.UserID,
		ServiceType:      req.ServiceType,
		Location:         req.Location,
		Description:      req.Description,
		Urgency:          req.Urgency,
		Reason:           reason,
		OccurredAt:       time.Now(),
	})
}
