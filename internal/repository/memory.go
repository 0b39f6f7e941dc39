package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/condo-service/internal/domain"
)

// MemoryUserRepository keeps users in process memory. It backs the service
// when no Postgres DSN is configured and doubles as a test directory.
type MemoryUserRepository struct {
	mu           sync.RWMutex
	nextID       int64
	users        map[int64]domain.User
	bootstrapped bool
	now          func() time.Time
}

// NewMemoryUserRepository returns an empty in-memory directory.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]domain.User), now: time.Now}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(user)
}

func (r *MemoryUserRepository) CreateBootstrapAdmin(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bootstrapped || len(r.users) > 0 {
		return ErrBootstrapClosed
	}
	if err := r.insert(user); err != nil {
		return err
	}
	r.bootstrapped = true
	return nil
}

// insert must be called with the lock held.
func (r *MemoryUserRepository) insert(user *domain.User) error {
	if r.emailTaken(user.Email, 0) {
		return ErrDuplicateEmail
	}
	r.nextID++
	now := r.now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return ErrDuplicateEmail
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	if len(r.users) == 0 {
		r.bootstrapped = false
	}
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// emailTaken must be called with the lock held.
func (r *MemoryUserRepository) emailTaken(email string, exceptID int64) bool {
	for id, user := range r.users {
		if id != exceptID && strings.EqualFold(user.Email, email) {
			return true
		}
	}
	return false
}

// MemoryCondominioRepository is the in-memory counterpart of the condominio store.
type MemoryCondominioRepository struct {
	mu     sync.RWMutex
	nextID int64
	condos map[int64]domain.Condominio
	now    func() time.Time
}

// NewMemoryCondominioRepository returns an empty in-memory store.
func NewMemoryCondominioRepository() *MemoryCondominioRepository {
	return &MemoryCondominioRepository{condos: make(map[int64]domain.Condominio), now: time.Now}
}

func (r *MemoryCondominioRepository) Create(_ context.Context, condo *domain.Condominio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	condo.ID = r.nextID
	condo.CreatedAt = now
	condo.UpdatedAt = now
	r.condos[condo.ID] = *condo
	return nil
}

func (r *MemoryCondominioRepository) Update(_ context.Context, condo *domain.Condominio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.condos[condo.ID]
	if !ok {
		return ErrNotFound
	}
	condo.CreatedAt = existing.CreatedAt
	condo.UpdatedAt = r.now()
	r.condos[condo.ID] = *condo
	return nil
}

func (r *MemoryCondominioRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.condos[id]; !ok {
		return ErrNotFound
	}
	delete(r.condos, id)
	return nil
}

func (r *MemoryCondominioRepository) GetByID(_ context.Context, id int64) (*domain.Condominio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	condo, ok := r.condos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &condo, nil
}

func (r *MemoryCondominioRepository) List(_ context.Context) ([]domain.Condominio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Condominio, 0, len(r.condos))
	for _, condo := range r.condos {
		result = append(result, condo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
