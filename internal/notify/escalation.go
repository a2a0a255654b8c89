package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/djobea/djobea-ai/pkg/logging"
)

// Escalation describes a request the operations team must pick up manually.
type Escalation struct {
	RequestReference string
	UserPhone        string
	ServiceType      string
	Location         string
	Description      string
	Urgency          string
	Reason           string
	OccurredAt       time.Time
}

// EscalationService emails the operations inbox when automated provider
// notification has been exhausted.
type EscalationService struct {
	email  EmailSender
	inbox  string
	logger *logging.Logger
}

// NewEscalationService creates an escalation service. When email is nil or the
// inbox empty, escalations are logged only.
func NewEscalationService(email EmailSender, inbox string, logger *logging.Logger) *EscalationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EscalationService{email: email, inbox: inbox, logger: logger.Named("notify.escalation")}
}

// Escalate notifies the operations team about a stranded request. A delivery
// failure is logged but never propagated: escalation is best-effort and must
// not break the user-facing flow.
func (s *EscalationService) Escalate(ctx context.Context, esc Escalation) {
	s.logger.Warn("request escalated to human support",
		"reference", esc.RequestReference,
		"service", esc.ServiceType,
		"reason", esc.Reason)

	if s.email == nil || s.inbox == "" {
		return
	}

	msg := EmailMessage{
		To:      s.inbox,
		ToName:  "Équipe Djobea",
		Subject: fmt.Sprintf("[Djobea] Demande %s sans prestataire", esc.RequestReference),
		Body:    s.composeBody(esc),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("escalation email failed", "error", err, "reference", esc.RequestReference)
	}
}

func (s *EscalationService) composeBody(esc Escalation) string {
	at := esc.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Demande : %s\n", esc.RequestReference)
	fmt.Fprintf(&b, "Client : %s\n", esc.UserPhone)
	fmt.Fprintf(&b, "Service : %s\n", esc.ServiceType)
	fmt.Fprintf(&b, "Lieu : %s\n", esc.Location)
	if esc.Description != "" {
		fmt.Fprintf(&b, "Détails : %s\n", esc.Description)
	}
	if esc.Urgency != "" {
		fmt.Fprintf(&b, "Urgence : %s\n", esc.Urgency)
	}
	fmt.Fprintf(&b, "Motif : %s\n", esc.Reason)
	fmt.Fprintf(&b, "Horodatage : %s\n", at.Format(time.RFC3339))
	b.WriteString("\nAucun prestataire n'a pu être contacté automatiquement. Prise en charge manuelle requise.")
	return b.String()
}
