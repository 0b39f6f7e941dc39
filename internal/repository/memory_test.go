package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/condo-service/internal/domain"
)

func TestMemoryUserRepositoryEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	first := &domain.User{Name: "Jane", Email: "jane@example.com", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	dup := &domain.User{Name: "Other", Email: "JANE@example.com", Role: domain.RoleUser}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicateEmail)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", stored.Name)
}

func TestMemoryUserRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	a := &domain.User{Name: "A", Email: "a@example.com"}
	b := &domain.User{Name: "B", Email: "b@example.com"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	clash := *b
	clash.Email = "a@example.com"
	assert.ErrorIs(t, repo.Update(ctx, &clash), ErrDuplicateEmail)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", stored.Email)

	same := *b
	same.Name = "Bee"
	require.NoError(t, repo.Update(ctx, &same))

	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: 99}), ErrNotFound)
}

func TestMemoryUserRepositoryDeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, repo.Create(ctx, &domain.User{Name: email, Email: email}))
	}
	require.NoError(t, repo.Delete(ctx, 2))
	assert.ErrorIs(t, repo.Delete(ctx, 2), ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(3), users[1].ID)

	_, err = repo.GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepositoryConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(ctx, &domain.User{Name: "Race", Email: "race@example.com"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}

func TestMemoryUserRepositoryBootstrapAdminOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		closed  int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := &domain.User{Name: "Root", Email: fmt.Sprintf("root%d@example.com", i), Role: domain.RoleAdmin}
			err := repo.CreateBootstrapAdmin(ctx, user)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrBootstrapClosed):
				closed++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 7, closed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryUserRepositoryBootstrapReopensWhenEmptied(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	root := &domain.User{Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}
	require.NoError(t, repo.CreateBootstrapAdmin(ctx, root))
	member := &domain.User{Name: "Mari", Email: "mari@example.com", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, member))

	require.NoError(t, repo.Delete(ctx, root.ID))
	err := repo.CreateBootstrapAdmin(ctx, &domain.User{Name: "Again", Email: "again@example.com", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrBootstrapClosed)

	require.NoError(t, repo.Delete(ctx, member.ID))
	assert.NoError(t, repo.CreateBootstrapAdmin(ctx, &domain.User{Name: "Again", Email: "again@example.com", Role: domain.RoleAdmin}))
}

func TestMemoryCondominioRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCondominioRepository()

	condo := &domain.Condominio{Name: "Aurora"}
	require.NoError(t, repo.Create(ctx, condo))

	condo.Name = "Aurora II"
	require.NoError(t, repo.Update(ctx, condo))

	got, err := repo.GetByID(ctx, condo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aurora II", got.Name)

	require.NoError(t, repo.Delete(ctx, condo.ID))
	_, err = repo.GetByID(ctx, condo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, condo), ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
