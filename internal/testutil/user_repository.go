package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/repository"
)

type InMemoryUserRepository struct {
	mutex sync.Mutex
	users map[string]entity.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]entity.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return repository.ErrAlreadyExists
	}

	r.users[user.Username] = *user
	return nil
}

func (r *InMemoryUserRepository) GetByUsername(
	ctx context.Context, username string,
) (*entity.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return &user, nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.users[user.Username]
	if !ok {
		return repository.ErrNotFound
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Bio = user.Bio
	r.users[user.Username] = existing
	return nil
}

func (r *InMemoryUserRepository) SearchByPrefix(
	ctx context.Context, prefix string,
) ([]entity.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	users := []entity.User{}
	for username, user := range r.users {
		if strings.HasPrefix(username, prefix) {
			users = append(users, user)
		}
	}

	return users, nil
}

func (r *InMemoryUserRepository) AddScore(
	ctx context.Context, username string, score entity.Score,
) (*entity.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}

	user.Scores = append(user.Scores, score)
	r.users[username] = user
	return &user, nil
}

func (r *InMemoryUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, ok := r.users[username]
	return ok, nil
}

// MustCreate seeds a user and panics on conflict, for test fixtures.
func (r *InMemoryUserRepository) MustCreate(username string) {
	user := entity.NewUser(username, "First", "Last", nil)
	if err := r.Create(context.Background(), user); err != nil {
		panic(err)
	}
}
