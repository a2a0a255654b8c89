package requests

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines storage for service requests. Accept must be a single
// conditional update so two concurrent acceptances cannot both win.
type Repository interface {
	Create(ctx context.Context, req *ServiceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceRequest, error)
	Update(ctx context.Context, req *ServiceRequest) error
	// AcceptIfUnassigned assigns the provider only while the request is still
	// PENDING or PROVIDER_NOTIFIED with no provider set. Returns
	// ErrAlreadyAssigned when the conditional update matches no row.
	AcceptIfUnassigned(ctx context.Context, id, providerID uuid.UUID, at time.Time) (*ServiceRequest, error)
	// UpdateStatusFrom moves to a new status only when the current status is
	// one of the expected values. Returns ErrInvalidTransition otherwise.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []Status, to Status) (*ServiceRequest, error)
	// FindActiveByUser returns the user's single non-terminal request, or nil.
	FindActiveByUser(ctx context.Context, userID string) (*ServiceRequest, error)
}

// InMemoryRepository keeps requests in a map, guarded by a mutex so the
// conditional accept stays atomic.
type InMemoryRepository struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*ServiceRequest
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{requests: make(map[uuid.UUID]*ServiceRequest)}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new request.
func (r *InMemoryRepository) Create(ctx context.Context, req *ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

// GetByID returns a copy of the stored request.
func (r *InMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

// Update overwrites the stored request.
func (r *InMemoryRepository) Update(ctx context.Context, req *ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[req.ID]; !ok {
		return ErrRequestNotFound
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

// AcceptIfUnassigned performs the compare-and-set under the repository lock.
func (r *InMemoryRepository) AcceptIfUnassigned(ctx context.Context, id, providerID uuid.UUID, at time.Time) (*ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if req.ProviderID != nil || (req.Status != StatusPending && req.Status != StatusProviderNotified) {
		return nil, ErrAlreadyAssigned
	}
	pid := providerID
	acceptedAt := at
	req.ProviderID = &pid
	req.Status = StatusAssigned
	req.AcceptedAt = &acceptedAt
	cp := *req
	return &cp, nil
}

// UpdateStatusFrom applies a guarded status change.
func (r *InMemoryRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []Status, to Status) (*ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	matched := false
	for _, s := range from {
		if req.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return nil, ErrInvalidTransition
	}
	req.Status = to
	now := time.Now().UTC()
	if to == StatusCompleted {
		req.CompletedAt = &now
	}
	cp := *req
	return &cp, nil
}

// FindActiveByUser returns the newest non-terminal request for the user.
func (r *InMemoryRepository) FindActiveByUser(ctx context.Context, userID string) (*ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var active []*ServiceRequest
	for _, req := range r.requests {
		if req.UserID == userID && !req.Status.IsTerminal() {
			active = append(active, req)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	cp := *active[0]
	return &cp, nil
}
