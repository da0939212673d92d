package accounts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a := fixture()
	_, err := repo.Create(ctx, a)
	require.NoError(t, err)

	byEmail, err := repo.GetByEmail(ctx, a.Email)
	require.NoError(t, err)
	assert.Equal(t, a, byEmail)

	byID, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, byID)

	_, err = repo.GetByEmail(ctx, "ANNE@example.dk")
	assert.ErrorIs(t, err, common.ErrorNotFound, "email match is exact")
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, fixture())
	require.NoError(t, err)

	b := fixture()
	b.ID = "other-id"
	_, err = repo.Create(ctx, b)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a := fixture()
	_, err := repo.Create(ctx, a)
	require.NoError(t, err)

	a.Name = "Mutated"
	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anne Øst", got.Name)

	got.City = "Mutated"
	again, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, again.City)
}

func TestMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a := fixture()
	_, err := repo.Create(ctx, a)
	require.NoError(t, err)

	other := fixture()
	other.ID, other.Email = "other-id", "other@example.dk"
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	changed := *a
	changed.Email = "new@example.dk"
	changed.CreatedAt = time.Time{}
	changed.UpdatedAt = a.UpdatedAt.Add(time.Minute)

	got, err := repo.Update(ctx, &changed)
	require.NoError(t, err)
	assert.Equal(t, a.CreatedAt, got.CreatedAt, "createdAt is immutable")

	_, err = repo.GetByEmail(ctx, a.Email)
	assert.ErrorIs(t, err, common.ErrorNotFound, "old email is released")
	_, err = repo.GetByEmail(ctx, "new@example.dk")
	assert.NoError(t, err)

	changed.Email = "other@example.dk"
	_, err = repo.Update(ctx, &changed)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	missing := fixture()
	missing.ID = "ghost"
	_, err = repo.Update(ctx, missing)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a := fixture()
	_, err := repo.Create(ctx, a)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, a.ID))
	require.NoError(t, repo.Delete(ctx, a.ID))

	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Create(ctx, a)
	assert.NoError(t, err, "email is free again after delete")
}

func TestMemoryRepository_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := fixture()
			a.ID = string(rune('a' + i))
			_, err := repo.Create(ctx, a)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, ok)
}
