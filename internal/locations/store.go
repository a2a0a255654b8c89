package locations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// LocationMatch is a learned mapping from free-text input to a landmark.
// Rows are append-only.
type LocationMatch struct {
	ID         uuid.UUID `json:"id"`
	Input      string    `json:"input"`
	Landmark   string    `json:"landmark"`
	Area       string    `json:"area"`
	Confidence float64   `json:"confidence"`
	Confirmed  bool      `json:"confirmed"`
	CreatedAt  time.Time `json:"created_at"`
}

// MatchStore persists learned location matches.
type MatchStore interface {
	Create(ctx context.Context, m *LocationMatch) error
}

// InMemoryMatchStore collects matches in a slice.
type InMemoryMatchStore struct {
	mu      sync.Mutex
	matches []LocationMatch
}

// NewInMemoryMatchStore creates an empty in-memory store.
func NewInMemoryMatchStore() *InMemoryMatchStore {
	return &InMemoryMatchStore{}
}

var _ MatchStore = (*InMemoryMatchStore)(nil)

// Create appends a match record.
func (s *InMemoryMatchStore) Create(ctx context.Context, m *LocationMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.matches = append(s.matches, *m)
	return nil
}

// All returns a copy of the recorded matches.
func (s *InMemoryMatchStore) All() []LocationMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LocationMatch, len(s.matches))
	copy(out, s.matches)
	return out
}

// PgxPool is the subset of pgxpool.Pool used by the store.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresMatchStore persists matches in the relational database.
type PostgresMatchStore struct {
	pool PgxPool
}

// NewPostgresMatchStore initializes a store backed by pgxpool.
func NewPostgresMatchStore(pool PgxPool) *PostgresMatchStore {
	if pool == nil {
		panic("locations: pgx pool required")
	}
	return &PostgresMatchStore{pool: pool}
}

var _ MatchStore = (*PostgresMatchStore)(nil)

// Create inserts a new match row.
func (s *PostgresMatchStore) Create(ctx context.Context, m *LocationMatch) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	query := `
		INSERT INTO location_matches (id, input, landmark, area, confidence, confirmed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	if err := s.pool.QueryRow(ctx, query,
		m.ID, m.Input, m.Landmark, m.Area, m.Confidence, m.Confirmed,
	).Scan(&m.CreatedAt); err != nil {
		return fmt.Errorf("locations: insert match failed: %w", err)
	}
	return nil
}
