package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// Estimate is a monetary range for a service type, in XAF.
type Estimate struct {
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Description string `json:"description"`
}

// FormatRange renders the estimate for user-facing messages.
func (e Estimate) FormatRange() string {
	return fmt.Sprintf("%s – %s XAF", formatXAF(e.Min), formatXAF(e.Max))
}

// Source is an external pricing table (e.g. admin-managed rows).
type Source interface {
	GetEstimate(ctx context.Context, serviceType string) (Estimate, error)
}

// defaultEstimates is the hardcoded fallback so a pricing outage degrades
// gracefully instead of blocking the conversation.
var defaultEstimates = map[string]Estimate{
	requests.ServicePlumbing:  {Min: 5000, Max: 15000, Description: "Intervention plomberie (fuite, robinet, tuyauterie)"},
	requests.ServiceElectric:  {Min: 3000, Max: 10000, Description: "Intervention électricité (prise, câblage, disjoncteur)"},
	requests.ServiceAppliance: {Min: 2000, Max: 8000, Description: "Réparation électroménager (frigo, climatiseur, machine)"},
}

// Table resolves service estimates, preferring the external source and
// falling back to the built-in table on any failure.
type Table struct {
	source Source
	logger *logging.Logger
}

// NewTable creates a pricing table. source may be nil.
func NewTable(source Source, logger *logging.Logger) *Table {
	if logger == nil {
		logger = logging.Default()
	}
	return &Table{source: source, logger: logger.Named("pricing")}
}

// GetEstimate returns the estimate for a service type. It never fails:
// unknown services get a generic wide range.
func (t *Table) GetEstimate(ctx context.Context, serviceType string) Estimate {
	serviceType = strings.ToLower(strings.TrimSpace(serviceType))
	if t.source != nil {
		est, err := t.source.GetEstimate(ctx, serviceType)
		if err == nil && est.Max > 0 {
			return est
		}
		if err != nil {
			t.logger.Warn("pricing source unavailable, using defaults",
				"service", serviceType, "error", err)
		}
	}
	if est, ok := defaultEstimates[serviceType]; ok {
		return est
	}
	return Estimate{Min: 2000, Max: 20000, Description: "Intervention à domicile"}
}

func formatXAF(v int) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
