package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// AttemptOutcome is the result of a single provider-notification try.
type AttemptOutcome string

const (
	AttemptDelivered    AttemptOutcome = "delivered"
	AttemptChannelError AttemptOutcome = "channel_error"
)

// Attempt records one provider-notification try. Rows are append-only.
type Attempt struct {
	ID         uuid.UUID      `json:"id"`
	RequestID  uuid.UUID      `json:"request_id"`
	ProviderID uuid.UUID      `json:"provider_id"`
	Round      int            `json:"round"`
	Outcome    AttemptOutcome `json:"outcome"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AttemptStore persists notification attempts.
type AttemptStore interface {
	Create(ctx context.Context, a *Attempt) error
	// MaxRound returns the highest round recorded for a request, 0 when none.
	MaxRound(ctx context.Context, requestID uuid.UUID) (int, error)
	// ListByRequest returns all attempts for a request, oldest first.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Attempt, error)
}

// InMemoryAttemptStore collects attempts in a slice.
type InMemoryAttemptStore struct {
	mu       sync.Mutex
	attempts []Attempt
}

// NewInMemoryAttemptStore creates an empty in-memory store.
func NewInMemoryAttemptStore() *InMemoryAttemptStore {
	return &InMemoryAttemptStore{}
}

var _ AttemptStore = (*InMemoryAttemptStore)(nil)

// Create appends an attempt record.
func (s *InMemoryAttemptStore) Create(ctx context.Context, a *Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.attempts = append(s.attempts, *a)
	return nil
}

// MaxRound returns the highest recorded round for the request.
func (s *InMemoryAttemptStore) MaxRound(ctx context.Context, requestID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, a := range s.attempts {
		if a.RequestID == requestID && a.Round > max {
			max = a.Round
		}
	}
	return max, nil
}

// ListByRequest returns the attempts for a request in insertion order.
func (s *InMemoryAttemptStore) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Attempt
	for _, a := range s.attempts {
		if a.RequestID == requestID {
			out = append(out, a)
		}
	}
	return out, nil
}

// PgxPool is the subset of pgxpool.Pool used by the store.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresAttemptStore persists attempts in the relational database.
type PostgresAttemptStore struct {
	pool PgxPool
}

// NewPostgresAttemptStore initializes a store backed by pgxpool.
func NewPostgresAttemptStore(pool PgxPool) *PostgresAttemptStore {
	if pool == nil {
		panic("notifications: pgx pool required")
	}
	return &PostgresAttemptStore{pool: pool}
}

var _ AttemptStore = (*PostgresAttemptStore)(nil)

// Create inserts an attempt row.
func (s *PostgresAttemptStore) Create(ctx context.Context, a *Attempt) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	query := `
		INSERT INTO notification_attempts (id, request_id, provider_id, round, outcome, error)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	if err := s.pool.QueryRow(ctx, query,
		a.ID, a.RequestID, a.ProviderID, a.Round, a.Outcome, a.Error,
	).Scan(&a.CreatedAt); err != nil {
		return fmt.Errorf("notifications: insert attempt failed: %w", err)
	}
	return nil
}

// MaxRound returns the highest recorded round for the request.
func (s *PostgresAttemptStore) MaxRound(ctx context.Context, requestID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(round), 0) FROM notification_attempts WHERE request_id = $1`
	if err := s.pool.QueryRow(ctx, query, requestID).Scan(&max); err != nil {
		return 0, fmt.Errorf("notifications: max round lookup failed: %w", err)
	}
	return max, nil
}

// ListByRequest returns the attempts for a request, oldest first.
func (s *PostgresAttemptStore) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Attempt, error) {
	query := `
		SELECT id, request_id, provider_id, round, outcome, error, created_at
		FROM notification_attempts
		WHERE request_id = $1
		ORDER BY created_at
	`
	rows, err := s.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("notifications: list attempts failed: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.RequestID, &a.ProviderID, &a.Round, &a.Outcome, &a.Error, &a.CreatedAt); err != nil {
			return out, fmt.Errorf("notifications: scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
