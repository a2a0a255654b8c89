package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SlotStatus tracks the confirmation state of a booked window.
type SlotStatus string

const (
	SlotPending   SlotStatus = "pending"
	SlotConfirmed SlotStatus = "confirmed"
	SlotCancelled SlotStatus = "cancelled"
)

// AppointmentSlot is a booked time window tied to a request and provider.
// Rows are append-only except for the status field.
type AppointmentSlot struct {
	ID         uuid.UUID  `json:"id"`
	RequestID  uuid.UUID  `json:"request_id"`
	ProviderID uuid.UUID  `json:"provider_id"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Status     SlotStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ErrSlotNotFound is returned when a slot id does not exist.
var ErrSlotNotFound = errors.New("appointment slot not found")

// SlotStore persists appointment slots.
type SlotStore interface {
	Create(ctx context.Context, slot *AppointmentSlot) error
	SetStatus(ctx context.Context, id uuid.UUID, status SlotStatus) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]AppointmentSlot, error)
}

// InMemorySlotStore keeps slots in a map for tests and development.
type InMemorySlotStore struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*AppointmentSlot
}

// NewInMemorySlotStore creates an empty in-memory store.
func NewInMemorySlotStore() *InMemorySlotStore {
	return &InMemorySlotStore{slots: make(map[uuid.UUID]*AppointmentSlot)}
}

var _ SlotStore = (*InMemorySlotStore)(nil)

// Create stores a new slot.
func (s *InMemorySlotStore) Create(ctx context.Context, slot *AppointmentSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	if slot.Status == "" {
		slot.Status = SlotPending
	}
	cp := *slot
	s.slots[slot.ID] = &cp
	return nil
}

// SetStatus moves a slot to confirmed/cancelled.
func (s *InMemorySlotStore) SetStatus(ctx context.Context, id uuid.UUID, status SlotStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	slot.Status = status
	return nil
}

// ListByRequest returns copies of the slots booked for a request.
func (s *InMemorySlotStore) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]AppointmentSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []AppointmentSlot
	for _, slot := range s.slots {
		if slot.RequestID == requestID {
			out = append(out, *slot)
		}
	}
	return out, nil
}

// Get returns a copy of a stored slot, for tests.
func (s *InMemorySlotStore) Get(id uuid.UUID) (*AppointmentSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, false
	}
	cp := *slot
	return &cp, true
}

// PgxPool is the subset of pgxpool.Pool used by the store.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSlotStore persists slots in the relational database.
type PostgresSlotStore struct {
	pool PgxPool
}

// NewPostgresSlotStore initializes a store backed by pgxpool.
func NewPostgresSlotStore(pool PgxPool) *PostgresSlotStore {
	if pool == nil {
		panic("scheduling: pgx pool required")
	}
	return &PostgresSlotStore{pool: pool}
}

var _ SlotStore = (*PostgresSlotStore)(nil)

// Create inserts a new slot row.
func (s *PostgresSlotStore) Create(ctx context.Context, slot *AppointmentSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	if slot.Status == "" {
		slot.Status = SlotPending
	}
	query := `
		INSERT INTO appointment_slots (id, request_id, provider_id, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	if err := s.pool.QueryRow(ctx, query,
		slot.ID, slot.RequestID, slot.ProviderID, slot.Start, slot.End, slot.Status,
	).Scan(&slot.CreatedAt); err != nil {
		return fmt.Errorf("scheduling: insert slot failed: %w", err)
	}
	return nil
}

// ListByRequest returns the slots booked for a request, oldest first.
func (s *PostgresSlotStore) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]AppointmentSlot, error) {
	query := `
		SELECT id, request_id, provider_id, starts_at, ends_at, status, created_at
		FROM appointment_slots
		WHERE request_id = $1
		ORDER BY created_at
	`
	rows, err := s.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list slots failed: %w", err)
	}
	defer rows.Close()

	var out []AppointmentSlot
	for rows.Next() {
		var slot AppointmentSlot
		if err := rows.Scan(&slot.ID, &slot.RequestID, &slot.ProviderID,
			&slot.Start, &slot.End, &slot.Status, &slot.CreatedAt); err != nil {
			return out, fmt.Errorf("scheduling: scan slot: %w", err)
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

// SetStatus updates the slot status.
func (s *PostgresSlotStore) SetStatus(ctx context.Context, id uuid.UUID, status SlotStatus) error {
	tag, err := s.pool.Exec(ctx, `UPDATE appointment_slots SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("scheduling: slot status update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}
