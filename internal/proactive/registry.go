package proactive

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/djobea/djobea-ai/pkg/logging"
)

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Registry runs at most one cancellable task per request id. Starting a task
// for an id that already has one cancels the old task first, so a request can
// never be tracked twice.
type Registry struct {
	mu     sync.Mutex
	tasks  map[uuid.UUID]*task
	wg     sync.WaitGroup
	logger *logging.Logger
}

// NewRegistry creates an empty task registry.
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	return &Registry{
		tasks:  make(map[uuid.UUID]*task),
		logger: logger.Named("proactive.registry"),
	}
}

// Start launches fn in its own goroutine keyed by id. The context passed to
// fn is cancelled by Stop, StopAll, or a later Start for the same id.
func (r *Registry) Start(id uuid.UUID, fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}

	r.mu.Lock()
	old, replacing := r.tasks[id]
	r.tasks[id] = t
	r.mu.Unlock()

	if replacing {
		// The replacement must never overlap the task it evicts.
		old.cancel()
		<-old.done
		r.logger.Debug("replaced running task", "request_id", id)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.remove(id, t)
		defer close(t.done)
		fn(ctx)
	}()
}

// Stop cancels the task for id, if any. Returns whether a task was running.
func (r *Registry) Stop(id uuid.UUID) bool {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if ok {
		delete(r.tasks, id)
	}
	r.mu.Unlock()
	if ok {
		t.cancel()
	}
	return ok
}

// StopAll cancels every task and waits for the goroutines to drain.
func (r *Registry) StopAll() {
	r.mu.Lock()
	for id, t := range r.tasks {
		t.cancel()
		delete(r.tasks, id)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// Len reports how many tasks are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// remove clears the registry entry unless a replacement task took the slot.
func (r *Registry) remove(id uuid.UUID, t *task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.tasks[id]; ok && current == t {
		delete(r.tasks, id)
	}
}
