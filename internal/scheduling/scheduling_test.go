package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djobea/djobea-ai/internal/requests"
)

// Wednesday morning in Douala, well before the same-day cutoff.
func midweekMorning() time.Time {
	return time.Date(2026, time.August, 19, 10, 0, 0, 0, Timezone())
}

func TestParsePreference(t *testing.T) {
	p, ok := ParsePreference("  tomorrow_morning ")
	require.True(t, ok)
	assert.Equal(t, PreferenceTomorrowMorning, p)

	_, ok = ParsePreference("NEXT_MONTH")
	assert.False(t, ok)
	_, ok = ParsePreference("")
	assert.False(t, ok)
}

func TestSupplements(t *testing.T) {
	assert.Equal(t, 2000, PreferenceUrgent.Supplement())
	assert.Equal(t, 1500, PreferenceWeekend.Supplement())
	assert.Equal(t, 1000, PreferenceToday.Supplement())
	assert.Equal(t, 0, PreferenceTomorrowMorning.Supplement())
	assert.Equal(t, 0, PreferenceFlexible.Supplement())
}

func TestUrgencyMapping(t *testing.T) {
	assert.Equal(t, requests.UrgencyUrgent, PreferenceUrgent.Urgency())
	assert.Equal(t, requests.UrgencyNormal, PreferenceToday.Urgency())
	assert.Equal(t, requests.UrgencyNormal, PreferenceWeekend.Urgency())
	assert.Equal(t, requests.UrgencyFlexible, PreferenceThisWeek.Urgency())
	assert.Equal(t, requests.UrgencyFlexible, PreferenceFlexible.Urgency())
}

func TestWindowTomorrowMorning(t *testing.T) {
	now := midweekMorning()
	start, end, ok := Window(PreferenceTomorrowMorning, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.August, 20, 8, 0, 0, 0, Timezone()), start)
	assert.Equal(t, time.Date(2026, time.August, 20, 12, 0, 0, 0, Timezone()), end)
}

func TestWindowTodayCutoff(t *testing.T) {
	now := midweekMorning()
	start, end, ok := Window(PreferenceToday, now)
	require.True(t, ok)
	assert.True(t, start.After(now))
	assert.Equal(t, 20, end.In(Timezone()).Hour())

	evening := time.Date(2026, time.August, 19, 17, 0, 0, 0, Timezone())
	_, _, ok = Window(PreferenceToday, evening)
	assert.False(t, ok, "same-day should close at the cutoff hour")
}

func TestWindowWeekendStartsSaturday(t *testing.T) {
	start, end, ok := Window(PreferenceWeekend, midweekMorning())
	require.True(t, ok)
	assert.Equal(t, time.Saturday, start.In(Timezone()).Weekday())
	assert.Equal(t, 8, start.In(Timezone()).Hour())
	assert.True(t, end.After(start))
}

func TestWindowWeekendPastStartRollsForward(t *testing.T) {
	// Saturday evening: this weekend's window already started, offer the next.
	satEvening := time.Date(2026, time.August, 22, 19, 0, 0, 0, Timezone())
	start, end, ok := Window(PreferenceWeekend, satEvening)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.August, 29, 8, 0, 0, 0, Timezone()), start)
	assert.Equal(t, time.Date(2026, time.August, 30, 18, 0, 0, 0, Timezone()), end)

	// Saturday before the window opens still offers the same weekend.
	satDawn := time.Date(2026, time.August, 22, 7, 0, 0, 0, Timezone())
	start, _, ok = Window(PreferenceWeekend, satDawn)
	require.True(t, ok)
	assert.Equal(t, 22, start.In(Timezone()).Day())
}

func TestWindowUrgentIsImmediate(t *testing.T) {
	now := midweekMorning()
	start, end, ok := Window(PreferenceUrgent, now)
	require.True(t, ok)
	assert.Equal(t, now, start)
	assert.Equal(t, 2*time.Hour, end.Sub(start))
}

func TestGetSchedulingOptionsDropsClosedToday(t *testing.T) {
	svc := NewService(requests.NewInMemoryRepository(), NewInMemorySlotStore(), nil)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 19, 18, 30, 0, 0, Timezone())
	}

	options := svc.GetSchedulingOptions("plomberie", "Bonamoussadi")
	require.NotEmpty(t, options)
	for _, opt := range options {
		assert.NotEqual(t, PreferenceToday, opt.Preference)
	}
}

func TestGetSchedulingOptionsCarriesSupplements(t *testing.T) {
	svc := NewService(requests.NewInMemoryRepository(), NewInMemorySlotStore(), nil)
	svc.now = midweekMorning

	options := svc.GetSchedulingOptions("plomberie", "Bonamoussadi")
	bySupplement := make(map[Preference]int, len(options))
	for _, opt := range options {
		bySupplement[opt.Preference] = opt.Supplement
	}
	assert.Equal(t, SupplementUrgent, bySupplement[PreferenceUrgent])
	assert.Equal(t, SupplementSameDay, bySupplement[PreferenceToday])
	assert.Equal(t, SupplementWeekend, bySupplement[PreferenceWeekend])
}

func TestApplySchedulingPersistsChoice(t *testing.T) {
	ctx := context.Background()
	repo := requests.NewInMemoryRepository()
	svc := NewService(repo, NewInMemorySlotStore(), nil)
	svc.now = midweekMorning

	req := &requests.ServiceRequest{
		UserID:      "+237690000001",
		ServiceType: requests.ServicePlumbing,
		Location:    "Bonamoussadi",
		Status:      requests.StatusPending,
	}
	require.NoError(t, repo.Create(ctx, req))

	updated, err := svc.ApplyScheduling(ctx, req.ID, PreferenceUrgent)
	require.NoError(t, err)
	assert.Equal(t, string(PreferenceUrgent), updated.SchedulingPreference)
	assert.Equal(t, SupplementUrgent, updated.UrgencySupplement)
	assert.Equal(t, requests.UrgencyUrgent, updated.Urgency)
	require.NotNil(t, updated.PreferredStart)
	require.NotNil(t, updated.PreferredEnd)

	stored, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, requests.UrgencyUrgent, stored.Urgency)
}

func TestApplySchedulingRejectsClosedPreference(t *testing.T) {
	ctx := context.Background()
	repo := requests.NewInMemoryRepository()
	svc := NewService(repo, nil, nil)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 19, 19, 0, 0, 0, Timezone())
	}

	req := &requests.ServiceRequest{
		UserID:      "+237690000001",
		ServiceType: requests.ServicePlumbing,
		Location:    "Akwa",
		Status:      requests.StatusPending,
	}
	require.NoError(t, repo.Create(ctx, req))

	_, err := svc.ApplyScheduling(ctx, req.ID, PreferenceToday)
	assert.Error(t, err)
}

func TestBookSlot(t *testing.T) {
	ctx := context.Background()
	slots := NewInMemorySlotStore()
	svc := NewService(requests.NewInMemoryRepository(), slots, nil)

	start := midweekMorning()
	end := start.Add(2 * time.Hour)
	providerID := uuid.New()
	req := &requests.ServiceRequest{
		ID:             uuid.New(),
		ProviderID:     &providerID,
		PreferredStart: &start,
		PreferredEnd:   &end,
	}

	slot, err := svc.BookSlot(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, SlotPending, slot.Status)
	assert.Equal(t, providerID, slot.ProviderID)

	// No window, no slot.
	bare := &requests.ServiceRequest{ID: uuid.New()}
	slot, err = svc.BookSlot(ctx, bare)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestAcceptanceBooksSlotAndCancellationReleasesIt(t *testing.T) {
	ctx := context.Background()
	repo := requests.NewInMemoryRepository()
	slots := NewInMemorySlotStore()
	svc := NewService(repo, slots, nil)
	lifecycle := requests.NewService(repo, nil, nil, nil, svc, nil)

	start := midweekMorning()
	end := start.Add(4 * time.Hour)
	req := &requests.ServiceRequest{
		UserID:         "+237690000001",
		ServiceType:    requests.ServicePlumbing,
		Description:    "fuite d'eau",
		Location:       "Bonamoussadi",
		Status:         requests.StatusProviderNotified,
		PreferredStart: &start,
		PreferredEnd:   &end,
	}
	require.NoError(t, repo.Create(ctx, req))

	_, err := lifecycle.Accept(ctx, req.ID, uuid.New())
	require.NoError(t, err)

	booked, err := slots.ListByRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, SlotPending, booked[0].Status)
	assert.Equal(t, start, booked[0].Start)

	_, err = lifecycle.Cancel(ctx, req.ID, "changement de programme")
	require.NoError(t, err)

	released, err := slots.ListByRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, released, 1)
	assert.Equal(t, SlotCancelled, released[0].Status)
}
