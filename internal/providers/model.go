package providers

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider is a service professional eligible for matching.
type Provider struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	WhatsAppID      string    `json:"whatsapp_id"`
	Services        []string  `json:"services"`
	CoverageAreas   []string  `json:"coverage_areas"` // empty means city-wide
	IsAvailable     bool      `json:"is_available"`
	IsActive        bool      `json:"is_active"`
	Rating          float64   `json:"rating"`
	TotalJobs       int       `json:"total_jobs"`
	ResponseTimeAvg float64   `json:"response_time_avg"` // minutes
	AcceptanceRate  float64   `json:"acceptance_rate"`
	CompletionRate  float64   `json:"completion_rate"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// Eligible reports whether the provider can be matched at all.
// A deactivated provider is never available.
func (p *Provider) Eligible() bool {
	return p.IsActive && p.IsAvailable && len(p.Services) > 0
}

// OffersService reports whether the provider lists the service type.
func (p *Provider) OffersService(service string) bool {
	service = strings.ToLower(strings.TrimSpace(service))
	for _, s := range p.Services {
		if strings.ToLower(strings.TrimSpace(s)) == service {
			return true
		}
	}
	return false
}

// CoversArea reports whether the provider serves the area. Empty coverage
// is interpreted as city-wide availability.
func (p *Provider) CoversArea(area string) bool {
	if len(p.CoverageAreas) == 0 {
		return true
	}
	area = strings.ToLower(strings.TrimSpace(area))
	if area == "" {
		return true
	}
	for _, a := range p.CoverageAreas {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if strings.Contains(area, a) || strings.Contains(a, area) {
			return true
		}
	}
	return false
}

// ContactAddress returns where outbound offers should be pushed, preferring
// the WhatsApp identity over the plain phone number.
func (p *Provider) ContactAddress() string {
	if p.WhatsAppID != "" {
		return p.WhatsAppID
	}
	return p.Phone
}

// ResponseBucket maps the average response time to a coarse user-facing label.
func (p *Provider) ResponseBucket() string {
	switch {
	case p.ResponseTimeAvg <= 0:
		return "délai inconnu"
	case p.ResponseTimeAvg <= 15:
		return "répond en moins de 15 min"
	case p.ResponseTimeAvg <= 30:
		return "répond en moins de 30 min"
	case p.ResponseTimeAvg <= 60:
		return "répond en moins d'une heure"
	default:
		return "répond dans la journée"
	}
}
