package notifications

import (
	"fmt"
	"strings"

	"github.com/djobea/djobea-ai/internal/pricing"
	"github.com/djobea/djobea-ai/internal/providers"
	"github.com/djobea/djobea-ai/internal/requests"
)

// SupportContact is the human escalation channel shown in emergency messages.
type SupportContact struct {
	Phone    string
	WhatsApp string
	Email    string
}

// ComposeOffer renders the structured offer message sent to a candidate provider.
func ComposeOffer(req *requests.ServiceRequest, est pricing.Estimate) string {
	var b strings.Builder
	b.WriteString("🔧 Nouvelle demande Djobea\n\n")
	fmt.Fprintf(&b, "Réf : %s\n", req.Reference())
	fmt.Fprintf(&b, "Service : %s\n", req.ServiceType)
	fmt.Fprintf(&b, "Lieu : %s\n", req.Location)
	if req.Description != "" {
		fmt.Fprintf(&b, "Détails : %s\n", req.Description)
	}
	if req.Urgency != "" {
		fmt.Fprintf(&b, "Urgence : %s\n", req.Urgency)
	}
	if est.Max > 0 {
		fmt.Fprintf(&b, "Estimation : %s\n", est.FormatRange())
	}
	if req.UrgencySupplement > 0 {
		fmt.Fprintf(&b, "Supplément urgence : %d XAF\n", req.UrgencySupplement)
	}
	b.WriteString("\nRépondez OUI pour accepter, NON pour refuser.")
	return b.String()
}

// ComposeFallbackContacts renders the pull-based contact list returned to the
// user when every push notification failed.
func ComposeFallbackContacts(req *requests.ServiceRequest, list []providers.Provider, est pricing.Estimate) string {
	var b strings.Builder
	b.WriteString("⚠️ Nous n'avons pas pu contacter automatiquement un prestataire.\n")
	b.WriteString("Voici les meilleurs prestataires disponibles, vous pouvez les joindre directement :\n\n")
	for i := range list {
		p := &list[i]
		fmt.Fprintf(&b, "%d. %s — ⭐ %.1f\n", i+1, p.Name, p.Rating)
		fmt.Fprintf(&b, "   📞 %s", p.Phone)
		if p.WhatsAppID != "" && p.WhatsAppID != p.Phone {
			fmt.Fprintf(&b, " / WhatsApp %s", p.WhatsAppID)
		}
		b.WriteString("\n")
		if len(p.CoverageAreas) > 0 {
			fmt.Fprintf(&b, "   Zone : %s\n", strings.Join(p.CoverageAreas, ", "))
		} else {
			b.WriteString("   Zone : toute la ville\n")
		}
		fmt.Fprintf(&b, "   ⏱ %s\n", p.ResponseBucket())
	}
	if est.Max > 0 {
		fmt.Fprintf(&b, "\nTarif indicatif : %s\n", est.FormatRange())
	}
	fmt.Fprintf(&b, "\nMentionnez la référence %s lors de votre appel.", req.Reference())
	return b.String()
}

// ComposeEmergency renders the final human-support message when no eligible
// provider exists at all.
func ComposeEmergency(req *requests.ServiceRequest, support SupportContact) string {
	var b strings.Builder
	b.WriteString("😔 Aucun prestataire n'est disponible pour le moment.\n\n")
	b.WriteString("Notre équipe va prendre le relais. Contactez-nous :\n")
	fmt.Fprintf(&b, "📞 %s\n", support.Phone)
	fmt.Fprintf(&b, "💬 WhatsApp : %s\n", support.WhatsApp)
	fmt.Fprintf(&b, "✉️ %s\n", support.Email)
	fmt.Fprintf(&b, "\nRéférence de votre demande : %s", req.Reference())
	return b.String()
}
