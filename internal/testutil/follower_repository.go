package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/findme-app/backend/internal/entity"
	"github.com/findme-app/backend/internal/repository"
)

// InMemoryFollowerRepository mirrors the conditional-write semantics of the
// dynamodb implementation: a pending request row refuses overwrite, status
// transitions require a pending row.
type InMemoryFollowerRepository struct {
	mutex    sync.Mutex
	requests map[string]entity.FollowRequest
	edges    map[string]map[string]bool

	// EdgeFailures makes the next n CreateEdges calls fail, used to drive
	// the reconcile path.
	EdgeFailures int
}

func NewInMemoryFollowerRepository() *InMemoryFollowerRepository {
	return &InMemoryFollowerRepository{
		requests: make(map[string]entity.FollowRequest),
		edges: map[string]map[string]bool{
			entity.GraphPartitionFollowers: {},
			entity.GraphPartitionFollowing: {},
		},
	}
}

func (r *InMemoryFollowerRepository) CreateRequest(
	ctx context.Context, request *entity.FollowRequest,
) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sortKey := entity.GraphSortKey(request.Requester, request.Requestee)
	if existing, ok := r.requests[sortKey]; ok && existing.Status == entity.FollowStatusPending {
		return repository.ErrAlreadyExists
	}

	r.requests[sortKey] = *request
	return nil
}

func (r *InMemoryFollowerRepository) GetRequest(
	ctx context.Context, requester, requestee string,
) (*entity.FollowRequest, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	request, ok := r.requests[entity.GraphSortKey(requester, requestee)]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return &request, nil
}

func (r *InMemoryFollowerRepository) UpdateRequestStatus(
	ctx context.Context, requester, requestee string, status entity.FollowStatus,
) (*entity.FollowRequest, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sortKey := entity.GraphSortKey(requester, requestee)
	request, ok := r.requests[sortKey]
	if !ok || request.Status != entity.FollowStatusPending {
		return nil, repository.ErrNotFound
	}

	request.Status = status
	r.requests[sortKey] = request
	return &request, nil
}

func (r *InMemoryFollowerRepository) CreateEdges(
	ctx context.Context, requester, requestee string,
) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.EdgeFailures > 0 {
		r.EdgeFailures--
		return context.DeadlineExceeded
	}

	r.edges[entity.GraphPartitionFollowers][entity.GraphSortKey(requestee, requester)] = true
	r.edges[entity.GraphPartitionFollowing][entity.GraphSortKey(requester, requestee)] = true
	return nil
}

func (r *InMemoryFollowerRepository) GetPendingByRequestee(
	ctx context.Context, requestee string,
) ([]entity.FollowRequest, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	requests := []entity.FollowRequest{}
	for _, request := range r.requests {
		if request.Requestee == requestee && request.Status == entity.FollowStatusPending {
			requests = append(requests, request)
		}
	}

	return requests, nil
}

func (r *InMemoryFollowerRepository) GetFollowers(
	ctx context.Context, userID string,
) ([]string, error) {
	return r.getCounterparts(entity.GraphPartitionFollowers, userID), nil
}

func (r *InMemoryFollowerRepository) GetFollowing(
	ctx context.Context, userID string,
) ([]string, error) {
	return r.getCounterparts(entity.GraphPartitionFollowing, userID), nil
}

func (r *InMemoryFollowerRepository) GetAcceptedRequests(
	ctx context.Context,
) ([]entity.FollowRequest, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	requests := []entity.FollowRequest{}
	for _, request := range r.requests {
		if request.Status == entity.FollowStatusAccepted {
			requests = append(requests, request)
		}
	}

	return requests, nil
}

// MustAccept seeds an accepted request with its edge pair, the usual state
// after a successful accept.
func (r *InMemoryFollowerRepository) MustAccept(requester, requestee string) {
	ctx := context.Background()
	if err := r.CreateRequest(ctx, &entity.FollowRequest{
		Requester: requester,
		Requestee: requestee,
		Status:    entity.FollowStatusPending,
		CreatedAt: time.Now().Unix(),
	}); err != nil {
		panic(err)
	}

	if _, err := r.UpdateRequestStatus(
		ctx, requester, requestee, entity.FollowStatusAccepted); err != nil {
		panic(err)
	}

	if err := r.CreateEdges(ctx, requester, requestee); err != nil {
		panic(err)
	}
}

func (r *InMemoryFollowerRepository) getCounterparts(partition, userID string) []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	counterparts := []string{}
	for sortKey := range r.edges[partition] {
		if strings.HasPrefix(sortKey, userID+"#") {
			counterparts = append(counterparts, entity.SplitGraphSortKey(sortKey))
		}
	}

	return counterparts
}
