package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/findme-app/backend/internal/entity"
)

// RequesteeIndexName is the secondary index of the graph table keyed by the
// requestee identity, used to list received follow requests.
const RequesteeIndexName = "RequesteeIndex"

type FollowerRepository interface {
	CreateRequest(ctx context.Context, request *entity.FollowRequest) error
	GetRequest(ctx context.Context, requester, requestee string) (*entity.FollowRequest, error)
	UpdateRequestStatus(ctx context.Context, requester, requestee string, status entity.FollowStatus) (*entity.FollowRequest, error)
	CreateEdges(ctx context.Context, requester, requestee string) error
	GetPendingByRequestee(ctx context.Context, requestee string) ([]entity.FollowRequest, error)
	GetFollowers(ctx context.Context, userID string) ([]string, error)
	GetFollowing(ctx context.Context, userID string) ([]string, error)
	GetAcceptedRequests(ctx context.Context) ([]entity.FollowRequest, error)
}

type dynamodbFollowerRepository struct {
	db    dynamodbiface.DynamoDBAPI
	table string
}

func NewFollowerRepository(db dynamodbiface.DynamoDBAPI, table string) *dynamodbFollowerRepository {
	return &dynamodbFollowerRepository{db: db, table: table}
}

// CreateRequest writes the pending request row. The put is conditional, a
// row whose status is still pending fails the write, while a resolved row
// of the same pair is overwritten so a declined pair can request again.
func (r *dynamodbFollowerRepository) CreateRequest(
	ctx context.Context, request *entity.FollowRequest,
) error {
	item, err := dynamodbattribute.MarshalMap(request)
	if err != nil {
		return fmt.Errorf("cannot marshal follow request: %w", err)
	}

	item["partition_key"] = &dynamodb.AttributeValue{S: aws.String(entity.GraphPartitionRequest)}
	item["sort_key"] = &dynamodb.AttributeValue{
		S: aws.String(entity.GraphSortKey(request.Requester, request.Requestee)),
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.Or(
			expression.AttributeNotExists(expression.Name("partition_key")),
			expression.Name("request_status").NotEqual(expression.Value(entity.FollowStatusPending)),
		)).
		Build()
	if err != nil {
		return err
	}

	_, err = r.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.table),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrAlreadyExists
		}

		return fmt.Errorf("cannot put follow request: %w", err)
	}

	return nil
}

func (r *dynamodbFollowerRepository) GetRequest(
	ctx context.Context, requester, requestee string,
) (*entity.FollowRequest, error) {
	output, err := r.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       graphKey(entity.GraphPartitionRequest, entity.GraphSortKey(requester, requestee)),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot get follow request: %w", err)
	}

	if len(output.Item) == 0 {
		return nil, ErrNotFound
	}

	var request entity.FollowRequest
	if err := dynamodbattribute.UnmarshalMap(output.Item, &request); err != nil {
		return nil, fmt.Errorf("cannot unmarshal follow request: %w", err)
	}

	return &request, nil
}

// UpdateRequestStatus moves a pending request to its terminal status. The
// update is conditional on the row still being pending, ErrNotFound is
// returned otherwise.
func (r *dynamodbFollowerRepository) UpdateRequestStatus(
	ctx context.Context, requester, requestee string, status entity.FollowStatus,
) (*entity.FollowRequest, error) {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.Set(
			expression.Name("request_status"), expression.Value(status),
		)).
		WithCondition(expression.Name("request_status").
			Equal(expression.Value(entity.FollowStatusPending))).
		Build()
	if err != nil {
		return nil, err
	}

	output, err := r.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       graphKey(entity.GraphPartitionRequest, entity.GraphSortKey(requester, requestee)),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              aws.String(dynamodb.ReturnValueAllNew),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("cannot update follow request status: %w", err)
	}

	var request entity.FollowRequest
	if err := dynamodbattribute.UnmarshalMap(output.Attributes, &request); err != nil {
		return nil, fmt.Errorf("cannot unmarshal follow request: %w", err)
	}

	return &request, nil
}

// CreateEdges stores the two mirrored relationship rows of an accepted
// request. The writes are independent, a fault in between leaves the graph
// inconsistent until the reconcile job heals it.
func (r *dynamodbFollowerRepository) CreateEdges(
	ctx context.Context, requester, requestee string,
) error {
	now := time.Now().Unix()

	// Row one: the requestee has the follower requester.
	if err := r.putEdge(ctx, entity.GraphPartitionFollowers,
		entity.GraphSortKey(requestee, requester), now); err != nil {
		return err
	}

	// Row two, mirrored for efficient queries: the requester is following
	// the requestee.
	return r.putEdge(ctx, entity.GraphPartitionFollowing,
		entity.GraphSortKey(requester, requestee), now)
}

func (r *dynamodbFollowerRepository) GetPendingByRequestee(
	ctx context.Context, requestee string,
) ([]entity.FollowRequest, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.KeyAnd(
			expression.Key("requestee").Equal(expression.Value(requestee)),
			expression.Key("partition_key").Equal(expression.Value(entity.GraphPartitionRequest)),
		)).
		WithFilter(expression.Name("request_status").
			Equal(expression.Value(entity.FollowStatusPending))).
		Build()
	if err != nil {
		return nil, err
	}

	output, err := r.db.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(RequesteeIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot query received follow requests of %s: %w", requestee, err)
	}

	var requests []entity.FollowRequest
	if err := dynamodbattribute.UnmarshalListOfMaps(output.Items, &requests); err != nil {
		return nil, fmt.Errorf("cannot unmarshal follow requests of %s: %w", requestee, err)
	}

	return requests, nil
}

func (r *dynamodbFollowerRepository) GetFollowers(
	ctx context.Context, userID string,
) ([]string, error) {
	return r.getCounterparts(ctx, entity.GraphPartitionFollowers, userID)
}

func (r *dynamodbFollowerRepository) GetFollowing(
	ctx context.Context, userID string,
) ([]string, error) {
	return r.getCounterparts(ctx, entity.GraphPartitionFollowing, userID)
}

// GetAcceptedRequests lists every accepted request row, used by the edge
// reconciliation job.
func (r *dynamodbFollowerRepository) GetAcceptedRequests(
	ctx context.Context,
) ([]entity.FollowRequest, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("partition_key").
			Equal(expression.Value(entity.GraphPartitionRequest))).
		WithFilter(expression.Name("request_status").
			Equal(expression.Value(entity.FollowStatusAccepted))).
		Build()
	if err != nil {
		return nil, err
	}

	var requests []entity.FollowRequest
	var unmarshalErr error

	err = r.db.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var pageRequests []entity.FollowRequest
		if unmarshalErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageRequests); unmarshalErr != nil {
			return false
		}

		requests = append(requests, pageRequests...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("cannot query accepted follow requests: %w", err)
	}

	if unmarshalErr != nil {
		return nil, fmt.Errorf("cannot unmarshal accepted follow requests: %w", unmarshalErr)
	}

	return requests, nil
}

// getCounterparts prefix-scans one relationship partition and returns the
// counterpart identity of every matching "{user}#{counterpart}" sort key.
func (r *dynamodbFollowerRepository) getCounterparts(
	ctx context.Context, partition, userID string,
) ([]string, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.KeyAnd(
			expression.Key("partition_key").Equal(expression.Value(partition)),
			expression.Key("sort_key").BeginsWith(userID+"#"),
		)).
		Build()
	if err != nil {
		return nil, err
	}

	output, err := r.db.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot query %s of %s: %w", partition, userID, err)
	}

	counterparts := []string{}
	for _, item := range output.Items {
		sortKey := aws.StringValue(item["sort_key"].S)
		counterparts = append(counterparts, entity.SplitGraphSortKey(sortKey))
	}

	return counterparts, nil
}

func (r *dynamodbFollowerRepository) putEdge(
	ctx context.Context, partition, sortKey string, timestamp int64,
) error {
	item := graphKey(partition, sortKey)
	item["created_at"] = &dynamodb.AttributeValue{
		N: aws.String(fmt.Sprintf("%d", timestamp)),
	}

	_, err := r.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("cannot put %s edge %s: %w", partition, sortKey, err)
	}

	return nil
}

func graphKey(partition, sortKey string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"partition_key": {S: aws.String(partition)},
		"sort_key":      {S: aws.String(sortKey)},
	}
}
