package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresAttemptStoreCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresAttemptStore(mock)
	reqID, provID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO notification_attempts`).
		WithArgs(pgxmock.AnyArg(), reqID, provID, 1, AttemptDelivered, "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	a := &Attempt{RequestID: reqID, ProviderID: provID, Round: 1, Outcome: AttemptDelivered}
	require.NoError(t, store.Create(context.Background(), a))
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, now, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAttemptStoreMaxRound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresAttemptStore(mock)
	reqID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(round\), 0\) FROM notification_attempts`).
		WithArgs(reqID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(2))

	max, err := store.MaxRound(context.Background(), reqID)
	require.NoError(t, err)
	assert.Equal(t, 2, max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAttemptStoreListByRequest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresAttemptStore(mock)
	reqID := uuid.New()
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "request_id", "provider_id", "round", "outcome", "error", "created_at",
	}).
		AddRow(uuid.New(), reqID, uuid.New(), 1, AttemptDelivered, "", now).
		AddRow(uuid.New(), reqID, uuid.New(), 2, AttemptChannelError, "timeout", now)

	mock.ExpectQuery(`SELECT id, request_id, provider_id, round, outcome, error, created_at`).
		WithArgs(reqID).
		WillReturnRows(rows)

	got, err := store.ListByRequest(context.Background(), reqID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, AttemptDelivered, got[0].Outcome)
	assert.Equal(t, AttemptChannelError, got[1].Outcome)
	assert.Equal(t, "timeout", got[1].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
