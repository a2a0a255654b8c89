package providers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines provider storage. Availability writes from provider
// self-service and from accept/decline handling both go through
// SetAvailability so they serialize on one code path.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	ListActive(ctx context.Context) ([]Provider, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	Upsert(ctx context.Context, p *Provider) error
}

// InMemoryRepository keeps providers in a map for tests and development.
type InMemoryRepository struct {
	mu        sync.RWMutex
	providers map[uuid.UUID]*Provider
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{providers: make(map[uuid.UUID]*Provider)}
}

var _ Repository = (*InMemoryRepository)(nil)

// Upsert inserts or replaces a provider.
func (r *InMemoryRepository) Upsert(ctx context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	cp := *p
	r.providers[p.ID] = &cp
	return nil
}

// GetByID returns a copy of the stored provider.
func (r *InMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, ErrProviderNotFound
	}
	cp := *p
	return &cp, nil
}

// ListActive returns all active providers.
func (r *InMemoryRepository) ListActive(ctx context.Context) ([]Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

// SetAvailability flips the availability flag.
func (r *InMemoryRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return ErrProviderNotFound
	}
	p.IsAvailable = available && p.IsActive
	return nil
}
