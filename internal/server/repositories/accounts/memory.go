package accounts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// MemoryRepository is a process-local store. Records are copied on the way in
// and out so callers never share state with the map.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.Account
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.Account),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[a.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}
	if _, ok := r.byID[a.ID]; ok {
		return nil, common.ErrorInternal
	}

	r.byID[a.ID] = *a
	r.byEmail[a.Email] = a.ID

	out := *a
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Update(_ context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[a.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if owner, taken := r.byEmail[a.Email]; taken && owner != a.ID {
		return nil, common.ErrDuplicateEmail
	}

	updated := *a
	updated.CreatedAt = old.CreatedAt

	delete(r.byEmail, old.Email)
	r.byEmail[updated.Email] = updated.ID
	r.byID[updated.ID] = updated

	return &updated, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.byID[id]; ok {
		delete(r.byEmail, a.Email)
		delete(r.byID, id)
	}
	return nil
}

func (r *MemoryRepository) Ping(context.Context) error { return nil }
