package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djobea/djobea-ai/internal/requests"
)

type sourceFunc func(ctx context.Context, serviceType string) (Estimate, error)

func (f sourceFunc) GetEstimate(ctx context.Context, serviceType string) (Estimate, error) {
	return f(ctx, serviceType)
}

func TestGetEstimateDefaults(t *testing.T) {
	table := NewTable(nil, nil)

	est := table.GetEstimate(context.Background(), requests.ServicePlumbing)
	assert.Equal(t, 5000, est.Min)
	assert.Equal(t, 15000, est.Max)

	// Case and whitespace insensitive.
	est = table.GetEstimate(context.Background(), "  Plomberie ")
	assert.Equal(t, 5000, est.Min)
}

func TestGetEstimatePrefersSource(t *testing.T) {
	src := sourceFunc(func(_ context.Context, _ string) (Estimate, error) {
		return Estimate{Min: 7000, Max: 12000, Description: "tarif admin"}, nil
	})
	table := NewTable(src, nil)

	est := table.GetEstimate(context.Background(), requests.ServiceElectric)
	assert.Equal(t, 7000, est.Min)
	assert.Equal(t, 12000, est.Max)
}

func TestGetEstimateFallsBackOnSourceError(t *testing.T) {
	src := sourceFunc(func(_ context.Context, _ string) (Estimate, error) {
		return Estimate{}, errors.New("connection refused")
	})
	table := NewTable(src, nil)

	est := table.GetEstimate(context.Background(), requests.ServiceAppliance)
	assert.Equal(t, 2000, est.Min)
	assert.Equal(t, 8000, est.Max)
}

func TestGetEstimateUnknownServiceGetsGenericRange(t *testing.T) {
	table := NewTable(nil, nil)
	est := table.GetEstimate(context.Background(), "jardinage")
	assert.Equal(t, 2000, est.Min)
	assert.Equal(t, 20000, est.Max)
	assert.NotEmpty(t, est.Description)
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "5 000 – 15 000 XAF", Estimate{Min: 5000, Max: 15000}.FormatRange())
	assert.Equal(t, "500 – 1 500 XAF", Estimate{Min: 500, Max: 1500}.FormatRange())
	assert.Equal(t, "1 250 000 – 2 000 000 XAF", Estimate{Min: 1250000, Max: 2000000}.FormatRange())
}
