package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"github.com/findme-app/backend/internal/entity"
)

// userPartition is the fixed partition key of all user rows, the sort key
// is the username.
const userPartition = "USER"

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SearchByPrefix(ctx context.Context, prefix string) ([]entity.User, error)
	AddScore(ctx context.Context, username string, score entity.Score) (*entity.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}

type dynamodbUserRepository struct {
	db    dynamodbiface.DynamoDBAPI
	table string
}

func NewUserRepository(db dynamodbiface.DynamoDBAPI, table string) *dynamodbUserRepository {
	return &dynamodbUserRepository{db: db, table: table}
}

// Create fails with ErrAlreadyExists if the username is taken.
func (r *dynamodbUserRepository) Create(ctx context.Context, user *entity.User) error {
	item, err := dynamodbattribute.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("cannot marshal user %s: %w", user.Username, err)
	}

	item["partition_key"] = &dynamodb.AttributeValue{S: aws.String(userPartition)}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("partition_key"))).
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

		return fmt.Errorf("cannot put user %s: %w", user.Username, err)
	}

	return nil
}

func (r *dynamodbUserRepository) GetByUsername(
	ctx context.Context, username string,
) (*entity.User, error) {
	output, err := r.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       userKey(username),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot get user %s: %w", username, err)
	}

	if len(output.Item) == 0 {
		return nil, ErrNotFound
	}

	var user entity.User
	if err := dynamodbattribute.UnmarshalMap(output.Item, &user); err != nil {
		return nil, fmt.Errorf("cannot unmarshal user %s: %w", username, err)
	}

	return &user, nil
}

// Update rewrites the profile fields, the score list is untouched.
func (r *dynamodbUserRepository) Update(ctx context.Context, user *entity.User) error {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.
			Set(expression.Name("first_name"), expression.Value(user.FirstName)).
			Set(expression.Name("last_name"), expression.Value(user.LastName)).
			Set(expression.Name("bio"), expression.Value(user.Bio))).
		WithCondition(expression.AttributeExists(expression.Name("partition_key"))).
		Build()
	if err != nil {
		return err
	}

	_, err = r.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       userKey(user.Username),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrNotFound
		}

		return fmt.Errorf("cannot update user %s: %w", user.Username, err)
	}

	return nil
}

func (r *dynamodbUserRepository) SearchByPrefix(
	ctx context.Context, prefix string,
) ([]entity.User, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.KeyAnd(
			expression.Key("partition_key").Equal(expression.Value(userPartition)),
			expression.Key("username").BeginsWith(prefix),
		)).
		Build()
	if err != nil {
		return nil, err
	}

	var users []entity.User
	var unmarshalErr error

	err = r.db.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var pageUsers []entity.User
		if unmarshalErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageUsers); unmarshalErr != nil {
			return false
		}

		users = append(users, pageUsers...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("cannot query users with prefix %s: %w", prefix, err)
	}

	if unmarshalErr != nil {
		return nil, fmt.Errorf("cannot unmarshal users with prefix %s: %w", prefix, unmarshalErr)
	}

	return users, nil
}

func (r *dynamodbUserRepository) AddScore(
	ctx context.Context, username string, score entity.Score,
) (*entity.User, error) {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.Set(
			expression.Name("scores"),
			expression.Name("scores").ListAppend(expression.Value([]entity.Score{score})),
		)).
		WithCondition(expression.AttributeExists(expression.Name("partition_key"))).
		Build()
	if err != nil {
		return nil, err
	}

	_, err = r.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       userKey(username),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("cannot append score of user %s: %w", username, err)
	}

	return r.GetByUsername(ctx, username)
}

func (r *dynamodbUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	output, err := r.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.table),
		Key:                  userKey(username),
		ProjectionExpression: aws.String("username"),
	})
	if err != nil {
		return false, fmt.Errorf("cannot check user %s: %w", username, err)
	}

	return len(output.Item) > 0, nil
}

func userKey(username string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"partition_key": {S: aws.String(userPartition)},
		"username":      {S: aws.String(username)},
	}
}
