package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSlotStoreCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresSlotStore(mock)
	slot := &AppointmentSlot{
		RequestID:  uuid.New(),
		ProviderID: uuid.New(),
		Start:      time.Date(2026, time.August, 20, 8, 0, 0, 0, time.UTC),
		End:        time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`INSERT INTO appointment_slots`).
		WithArgs(pgxmock.AnyArg(), slot.RequestID, slot.ProviderID, slot.Start, slot.End, SlotPending).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	require.NoError(t, store.Create(context.Background(), slot))
	assert.NotEqual(t, uuid.Nil, slot.ID)
	assert.Equal(t, SlotPending, slot.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlotStoreListByRequest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresSlotStore(mock)
	reqID := uuid.New()
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "request_id", "provider_id", "starts_at", "ends_at", "status", "created_at",
	}).
		AddRow(uuid.New(), reqID, uuid.New(), now, now.Add(2*time.Hour), SlotPending, now).
		AddRow(uuid.New(), reqID, uuid.New(), now, now.Add(4*time.Hour), SlotCancelled, now)

	mock.ExpectQuery(`SELECT id, request_id, provider_id, starts_at, ends_at, status, created_at`).
		WithArgs(reqID).
		WillReturnRows(rows)

	got, err := store.ListByRequest(context.Background(), reqID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, SlotPending, got[0].Status)
	assert.Equal(t, SlotCancelled, got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlotStoreSetStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresSlotStore(mock)
	id := uuid.New()

	mock.ExpectExec(`UPDATE appointment_slots SET status`).
		WithArgs(id, SlotConfirmed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, store.SetStatus(context.Background(), id, SlotConfirmed))

	mock.ExpectExec(`UPDATE appointment_slots SET status`).
		WithArgs(id, SlotCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, store.SetStatus(context.Background(), id, SlotCancelled), ErrSlotNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
