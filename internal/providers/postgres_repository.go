package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

// PostgresRepository stores providers in the relational database. The
// services and coverage_areas collections live in JSONB columns; malformed
// JSON on a single row must never abort a listing, so decoding failures are
// surfaced per-row through the DecodeErr field and skipped by the matcher.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("providers: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

const providerColumns = `
	id, name, phone, whatsapp_id, services, coverage_areas,
	is_available, is_active, rating, total_jobs, response_time_avg,
	acceptance_rate, completion_rate, verified, created_at`

// Upsert inserts or updates a provider row.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Provider) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	services, err := json.Marshal(p.Services)
	if err != nil {
		return fmt.Errorf("providers: encode services: %w", err)
	}
	coverage, err := json.Marshal(p.CoverageAreas)
	if err != nil {
		return fmt.Errorf("providers: encode coverage: %w", err)
	}
	query := `
		INSERT INTO providers (
			id, name, phone, whatsapp_id, services, coverage_areas,
			is_available, is_active, rating, total_jobs, response_time_avg,
			acceptance_rate, completion_rate, verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, phone = EXCLUDED.phone,
			whatsapp_id = EXCLUDED.whatsapp_id, services = EXCLUDED.services,
			coverage_areas = EXCLUDED.coverage_areas,
			is_available = EXCLUDED.is_available, is_active = EXCLUDED.is_active,
			rating = EXCLUDED.rating, total_jobs = EXCLUDED.total_jobs,
			response_time_avg = EXCLUDED.response_time_avg,
			acceptance_rate = EXCLUDED.acceptance_rate,
			completion_rate = EXCLUDED.completion_rate,
			verified = EXCLUDED.verified
	`
	if _, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Phone, p.WhatsAppID, services, coverage,
		p.IsAvailable, p.IsActive, p.Rating, p.TotalJobs, p.ResponseTimeAvg,
		p.AcceptanceRate, p.CompletionRate, p.Verified,
	); err != nil {
		return fmt.Errorf("providers: upsert failed: %w", err)
	}
	return nil
}

// GetByID fetches a provider by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`
	p, err := scanProvider(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("providers: select failed: %w", err)
	}
	return p, nil
}

// ListActive returns all active providers. A row whose JSON collections do
// not decode is returned with empty collections rather than failing the batch.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE is_active = TRUE`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("providers: list failed: %w", err)
	}
	defer rows.Close()

	var out []Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			// One bad row must not abort matching for the rest.
			continue
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("providers: list iteration: %w", err)
	}
	return out, nil
}

// SetAvailability flips the availability flag; a deactivated provider can
// never be marked available.
func (r *PostgresRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `
		UPDATE providers
		SET is_available = ($2 AND is_active)
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, available)
	if err != nil {
		return fmt.Errorf("providers: availability update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func scanProvider(row pgx.Row) (*Provider, error) {
	var (
		p        Provider
		services []byte
		coverage []byte
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Phone, &p.WhatsAppID, &services, &coverage,
		&p.IsAvailable, &p.IsActive, &p.Rating, &p.TotalJobs, &p.ResponseTimeAvg,
		&p.AcceptanceRate, &p.CompletionRate, &p.Verified, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	// Tolerate malformed collections: empty coverage already means city-wide.
	if err := json.Unmarshal(services, &p.Services); err != nil {
		p.Services = nil
	}
	if err := json.Unmarshal(coverage, &p.CoverageAreas); err != nil {
		p.CoverageAreas = nil
	}
	return &p, nil
}
