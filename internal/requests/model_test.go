package requests

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsSupportedService(t *testing.T) {
	assert.True(t, IsSupportedService("plomberie"))
	assert.True(t, IsSupportedService(" Électricité "))
	assert.False(t, IsSupportedService("jardinage"))
	assert.False(t, IsSupportedService(""))
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusProviderNotified},
		{StatusPending, StatusCancelled},
		{StatusProviderNotified, StatusAssigned},
		{StatusProviderNotified, StatusCancelled},
		{StatusAssigned, StatusInProgress},
		{StatusAssigned, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusCompleted, StatusPaymentPending},
		{StatusPaymentPending, StatusPaymentCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	forbidden := []struct{ from, to Status }{
		{StatusProviderNotified, StatusPending}, // no backward moves
		{StatusAssigned, StatusPending},
		{StatusPending, StatusAssigned}, // no skipping
		{StatusInProgress, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCompleted, StatusInProgress},
	}
	for _, tr := range forbidden {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s must be rejected", tr.from, tr.to)
	}
}

func TestTerminalAndCancellable(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusPaymentCompleted.IsTerminal())
	assert.False(t, StatusAssigned.IsTerminal())
	assert.False(t, StatusPaymentPending.IsTerminal())

	assert.True(t, StatusPending.IsCancellable())
	assert.True(t, StatusProviderNotified.IsCancellable())
	assert.True(t, StatusAssigned.IsCancellable())
	assert.False(t, StatusInProgress.IsCancellable())
	assert.False(t, StatusCompleted.IsCancellable())
}

func TestReference(t *testing.T) {
	req := &ServiceRequest{ID: uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")}
	ref := req.Reference()
	assert.Equal(t, "DJB-A1B2C3D4", ref)
	assert.True(t, strings.HasPrefix(ref, "DJB-"))
}

func TestCreateInputValidate(t *testing.T) {
	valid := CreateInput{
		UserID:      "+237690000001",
		ServiceType: ServicePlumbing,
		Location:    "Bonamoussadi",
	}
	assert.NoError(t, valid.Validate())

	noUser := valid
	noUser.UserID = "  "
	assert.ErrorIs(t, noUser.Validate(), ErrMissingUser)

	badService := valid
	badService.ServiceType = "jardinage"
	assert.ErrorIs(t, badService.Validate(), ErrUnsupportedService)

	noLocation := valid
	noLocation.Location = ""
	assert.ErrorIs(t, noLocation.Validate(), ErrMissingLocation)
}
