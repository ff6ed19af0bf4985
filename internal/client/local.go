package client

import (
	"context"
	"errors"

	"github.com/findme-app/backend/internal/repository"
)

// localUserLookup serves UserLookup straight from the user table, for the
// deployments where the follow domain and the user records share one
// service.
type localUserLookup struct {
	userRepo repository.UserRepository
}

func NewLocalUserLookup(userRepo repository.UserRepository) *localUserLookup {
	return &localUserLookup{userRepo: userRepo}
}

func (l *localUserLookup) Exists(ctx context.Context, username string) (bool, error) {
	return l.userRepo.Exists(ctx, username)
}

func (l *localUserLookup) GetDisplayName(ctx context.Context, username string) (string, error) {
	user, err := l.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Relationship rows may outlive a user record, fall back to the
			// raw identity instead of failing the whole listing.
			return username, nil
		}

		return "", err
	}

	return user.Username, nil
}
