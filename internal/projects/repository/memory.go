package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

// MemoryRepository is a process-local store for development and tests.
// It keeps insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.Project
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]domain.Project),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Project, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.items[id]))
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := clone(p)
	return &c, nil
}

func (r *MemoryRepository) Create(_ context.Context, data domain.ProjectFormData) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := data.WithID(uuid.NewString())
	p.CreatedAt = r.now()
	p.UpdatedAt = p.CreatedAt

	r.items[p.ID] = p
	r.order = append(r.order, p.ID)

	c := clone(p)
	return &c, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, data domain.ProjectFormData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}

	p := data.WithID(id)
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = r.now()
	r.items[id] = p
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) ScreenshotRefs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var refs []string
	for _, id := range r.order {
		refs = append(refs, r.items[id].Screenshots...)
	}
	return refs, nil
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }

func clone(p domain.Project) domain.Project {
	c := p.FormData().WithID(p.ID)
	c.CreatedAt = p.CreatedAt
	c.UpdatedAt = p.UpdatedAt
	return c
}
