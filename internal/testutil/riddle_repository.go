package testutil

import (
	"context"
	"sync"

	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/repository"
	"golang.org/x/exp/slices"
)

// InMemoryRiddleRepository mimics the dynamodb implementation, including
// its not-found behavior on partial updates of a deleted riddle.
type InMemoryRiddleRepository struct {
	mutex   sync.Mutex
	riddles map[string]entity.Riddle
}

func NewInMemoryRiddleRepository() *InMemoryRiddleRepository {
	return &InMemoryRiddleRepository{riddles: make(map[string]entity.Riddle)}
}

func (r *InMemoryRiddleRepository) Create(ctx context.Context, riddle *entity.Riddle) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.riddles[riddle.ID] = *riddle
	return nil
}

func (r *InMemoryRiddleRepository) GetByID(ctx context.Context, id string) (*entity.Riddle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	riddle, ok := r.riddles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return &riddle, nil
}

func (r *InMemoryRiddleRepository) GetByCreator(
	ctx context.Context, creatorID string,
) ([]entity.Riddle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	riddles := []entity.Riddle{}
	for _, riddle := range r.riddles {
		if riddle.CreatorID == creatorID {
			riddles = append(riddles, riddle)
		}
	}

	return riddles, nil
}

func (r *InMemoryRiddleRepository) GetByArena(
	ctx context.Context, arena string,
) ([]entity.Riddle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	riddles := []entity.Riddle{}
	for _, riddle := range r.riddles {
		if slices.Contains(riddle.Arenas, arena) {
			riddles = append(riddles, riddle)
		}
	}

	return riddles, nil
}

func (r *InMemoryRiddleRepository) AddRating(
	ctx context.Context, id string, rating entity.Rating,
) (*entity.Riddle, error) {
	return r.update(id, func(riddle *entity.Riddle) {
		riddle.Ratings = append(riddle.Ratings, rating)
	})
}

func (r *InMemoryRiddleRepository) AddComment(
	ctx context.Context, id string, comment entity.Comment,
) (*entity.Riddle, error) {
	return r.update(id, func(riddle *entity.Riddle) {
		riddle.Comments = append(riddle.Comments, comment)
	})
}

func (r *InMemoryRiddleRepository) AddGuess(
	ctx context.Context, id string, guess entity.Guess,
) (*entity.Riddle, error) {
	return r.update(id, func(riddle *entity.Riddle) {
		riddle.Guesses = append(riddle.Guesses, guess)
	})
}

func (r *InMemoryRiddleRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.riddles, id)
	return nil
}

func (r *InMemoryRiddleRepository) update(
	id string, apply func(*entity.Riddle),
) (*entity.Riddle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	riddle, ok := r.riddles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	apply(&riddle)
	r.riddles[id] = riddle
	return &riddle, nil
}
