package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool used by the repository.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores service requests in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("requests: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

const requestColumns = `
	id, user_id, provider_id, service_type, description, location,
	landmark_refs, location_confirmed, location_lat, location_lng,
	scheduling_preference, preferred_start, preferred_end,
	urgency, urgency_supplement, status, sub_status, cancellation_reason,
	estimated_cost, final_cost, commission_amount,
	created_at, accepted_at, scheduled_at, completed_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *ServiceRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	query := `
		INSERT INTO service_requests (
			id, user_id, service_type, description, location,
			landmark_refs, location_confirmed,
			scheduling_preference, preferred_start, preferred_end,
			urgency, urgency_supplement, status, estimated_cost
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.ServiceType,
		req.Description,
		req.Location,
		req.LandmarkRefs,
		req.LocationConfirmed,
		req.SchedulingPreference,
		req.PreferredStart,
		req.PreferredEnd,
		req.Urgency,
		req.UrgencySupplement,
		req.Status,
		req.EstimatedCost,
	).Scan(&req.CreatedAt); err != nil {
		return fmt.Errorf("requests: insert failed: %w", err)
	}
	return nil
}

// GetByID fetches a request by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE id = $1`
	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("requests: select failed: %w", err)
	}
	return req, nil
}

// Update persists the mutable fields of a request.
func (r *PostgresRepository) Update(ctx context.Context, req *ServiceRequest) error {
	query := `
		UPDATE service_requests SET
			description = $2, location = $3, landmark_refs = $4,
			location_confirmed = $5, location_lat = $6, location_lng = $7,
			scheduling_preference = $8, preferred_start = $9, preferred_end = $10,
			urgency = $11, urgency_supplement = $12, status = $13, sub_status = $14,
			cancellation_reason = $15, estimated_cost = $16, final_cost = $17,
			commission_amount = $18, scheduled_at = $19, completed_at = $20
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		req.ID,
		req.Description,
		req.Location,
		req.LandmarkRefs,
		req.LocationConfirmed,
		req.LocationLat,
		req.LocationLng,
		req.SchedulingPreference,
		req.PreferredStart,
		req.PreferredEnd,
		req.Urgency,
		req.UrgencySupplement,
		req.Status,
		req.SubStatus,
		req.CancellationReason,
		req.EstimatedCost,
		req.FinalCost,
		req.CommissionAmount,
		req.ScheduledAt,
		req.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("requests: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// AcceptIfUnassigned expresses the at-most-one-acceptance guarantee as a
// single conditional UPDATE, never a read-then-write pair.
func (r *PostgresRepository) AcceptIfUnassigned(ctx context.Context, id, providerID uuid.UUID, at time.Time) (*ServiceRequest, error) {
	query := `
		UPDATE service_requests
		SET provider_id = $2, status = $3, accepted_at = $4
		WHERE id = $1
		  AND provider_id IS NULL
		  AND status IN ($5, $6)
		RETURNING ` + requestColumns
	req, err := scanRequest(r.pool.QueryRow(ctx, query,
		id, providerID, StatusAssigned, at, StatusPending, StatusProviderNotified,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish "gone" from "lost the race".
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("requests: accept failed: %w", err)
	}
	return req, nil
}

// UpdateStatusFrom applies a guarded forward transition.
func (r *PostgresRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []Status, to Status) (*ServiceRequest, error) {
	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}
	query := `
		UPDATE service_requests
		SET status = $2,
		    completed_at = CASE WHEN $2 = $3 THEN now() ELSE completed_at END
		WHERE id = $1 AND status = ANY($4)
		RETURNING ` + requestColumns
	req, err := scanRequest(r.pool.QueryRow(ctx, query, id, to, StatusCompleted, states))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("requests: status update failed: %w", err)
	}
	return req, nil
}

// FindActiveByUser returns the newest non-terminal request for a user.
func (r *PostgresRepository) FindActiveByUser(ctx context.Context, userID string) (*ServiceRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM service_requests
		WHERE user_id = $1 AND status NOT IN ($2, $3, $4)
		ORDER BY created_at DESC
		LIMIT 1
	`
	req, err := scanRequest(r.pool.QueryRow(ctx, query,
		userID, StatusCompleted, StatusCancelled, StatusPaymentCompleted,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("requests: active lookup failed: %w", err)
	}
	return req, nil
}

func scanRequest(row pgx.Row) (*ServiceRequest, error) {
	var req ServiceRequest
	if err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.ProviderID,
		&req.ServiceType,
		&req.Description,
		&req.Location,
		&req.LandmarkRefs,
		&req.LocationConfirmed,
		&req.LocationLat,
		&req.LocationLng,
		&req.SchedulingPreference,
		&req.PreferredStart,
		&req.PreferredEnd,
		&req.Urgency,
		&req.UrgencySupplement,
		&req.Status,
		&req.SubStatus,
		&req.CancellationReason,
		&req.EstimatedCost,
		&req.FinalCost,
		&req.CommissionAmount,
		&req.CreatedAt,
		&req.AcceptedAt,
		&req.ScheduledAt,
		&req.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}
