package providers

import (
	"context"
	"fmt"
	"sort"

	"github.com/djobea/djobea-ai/pkg/logging"
)

// Matcher ranks eligible providers for a request. Quality first (rating
// descending), then give newer or less-loaded providers a chance (total
// jobs ascending).
type Matcher struct {
	repo   Repository
	logger *logging.Logger
}

// NewMatcher creates a provider matcher.
func NewMatcher(repo Repository, logger *logging.Logger) *Matcher {
	if repo == nil {
		panic("providers: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Matcher{repo: repo, logger: logger.Named("providers.matcher")}
}

// FindCandidates returns up to limit eligible providers for the service and
// area, ranked. A provider whose record cannot be evaluated is logged and
// skipped; one bad record never aborts matching for the rest.
func (m *Matcher) FindCandidates(ctx context.Context, service, area string, limit int) ([]Provider, error) {
	all, err := m.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("providers: candidate lookup: %w", err)
	}

	candidates := make([]Provider, 0, len(all))
	for i := range all {
		p := all[i]
		eligible, evalErr := m.evaluate(&p, service, area)
		if evalErr != nil {
			m.logger.Warn("skipping provider with bad record",
				"provider_id", p.ID, "error", evalErr)
			continue
		}
		if eligible {
			candidates = append(candidates, p)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Rating != candidates[j].Rating {
			return candidates[i].Rating > candidates[j].Rating
		}
		return candidates[i].TotalJobs < candidates[j].TotalJobs
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (m *Matcher) evaluate(p *Provider, service, area string) (eligible bool, err error) {
	// Coverage data comes from free-form registration; treat any panic from
	// unexpected shapes as a per-record failure.
	defer func() {
		if r := recover(); r != nil {
			eligible = false
			err = fmt.Errorf("provider record evaluation panicked: %v", r)
		}
	}()
	if !p.Eligible() {
		return false, nil
	}
	if !p.OffersService(service) {
		return false, nil
	}
	return p.CoversArea(area), nil
}
