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

// CreatorIndexName is the secondary index of the riddle table keyed by the
// creator identity.
const CreatorIndexName = "UserIndex"

type RiddleRepository interface {
	Create(ctx context.Context, riddle *entity.Riddle) error
	GetByID(ctx context.Context, id string) (*entity.Riddle, error)
	GetByCreator(ctx context.Context, creatorID string) ([]entity.Riddle, error)
	GetByArena(ctx context.Context, arena string) ([]entity.Riddle, error)
	AddRating(ctx context.Context, id string, rating entity.Rating) (*entity.Riddle, error)
	AddComment(ctx context.Context, id string, comment entity.Comment) (*entity.Riddle, error)
	AddGuess(ctx context.Context, id string, guess entity.Guess) (*entity.Riddle, error)
	Delete(ctx context.Context, id string) error
}

type dynamodbRiddleRepository struct {
	db    dynamodbiface.DynamoDBAPI
	table string
}

func NewRiddleRepository(db dynamodbiface.DynamoDBAPI, table string) *dynamodbRiddleRepository {
	return &dynamodbRiddleRepository{db: db, table: table}
}

func (r *dynamodbRiddleRepository) Create(ctx context.Context, riddle *entity.Riddle) error {
	item, err := dynamodbattribute.MarshalMap(riddle)
	if err != nil {
		return fmt.Errorf("cannot marshal riddle %s: %w", riddle.ID, err)
	}

	_, err = r.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("cannot put riddle %s: %w", riddle.ID, err)
	}

	return nil
}

func (r *dynamodbRiddleRepository) GetByID(ctx context.Context, id string) (*entity.Riddle, error) {
	output, err := r.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       riddleKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot get riddle %s: %w", id, err)
	}

	if len(output.Item) == 0 {
		return nil, ErrNotFound
	}

	var riddle entity.Riddle
	if err := dynamodbattribute.UnmarshalMap(output.Item, &riddle); err != nil {
		return nil, fmt.Errorf("cannot unmarshal riddle %s: %w", id, err)
	}

	return &riddle, nil
}

func (r *dynamodbRiddleRepository) GetByCreator(
	ctx context.Context, creatorID string,
) ([]entity.Riddle, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("user_id").Equal(expression.Value(creatorID))).
		Build()
	if err != nil {
		return nil, err
	}

	var riddles []entity.Riddle
	var unmarshalErr error

	// The index query is paginated, all pages are drained before returning.
	err = r.db.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(CreatorIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		var pageRiddles []entity.Riddle
		if unmarshalErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageRiddles); unmarshalErr != nil {
			return false
		}

		riddles = append(riddles, pageRiddles...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("cannot query riddles of %s: %w", creatorID, err)
	}

	if unmarshalErr != nil {
		return nil, fmt.Errorf("cannot unmarshal riddles of %s: %w", creatorID, unmarshalErr)
	}

	return riddles, nil
}

func (r *dynamodbRiddleRepository) GetByArena(
	ctx context.Context, arena string,
) ([]entity.Riddle, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("arenas").Contains(arena)).
		Build()
	if err != nil {
		return nil, err
	}

	var riddles []entity.Riddle
	var unmarshalErr error

	err = r.db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var pageRiddles []entity.Riddle
		if unmarshalErr = dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageRiddles); unmarshalErr != nil {
			return false
		}

		riddles = append(riddles, pageRiddles...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan riddles of arena %s: %w", arena, err)
	}

	if unmarshalErr != nil {
		return nil, fmt.Errorf("cannot unmarshal riddles of arena %s: %w", arena, unmarshalErr)
	}

	return riddles, nil
}

func (r *dynamodbRiddleRepository) AddRating(
	ctx context.Context, id string, rating entity.Rating,
) (*entity.Riddle, error) {
	return r.appendToList(ctx, id, "ratings", []entity.Rating{rating})
}

func (r *dynamodbRiddleRepository) AddComment(
	ctx context.Context, id string, comment entity.Comment,
) (*entity.Riddle, error) {
	return r.appendToList(ctx, id, "comments", []entity.Comment{comment})
}

func (r *dynamodbRiddleRepository) AddGuess(
	ctx context.Context, id string, guess entity.Guess,
) (*entity.Riddle, error) {
	return r.appendToList(ctx, id, "guesses", []entity.Guess{guess})
}

func (r *dynamodbRiddleRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       riddleKey(id),
	})
	if err != nil {
		return fmt.Errorf("cannot delete riddle %s: %w", id, err)
	}

	return nil
}

// appendToList appends values to one of the three entry lists with a
// list_append update. The update touches only the named attribute, so
// concurrent appends to the other lists are never clobbered.
func (r *dynamodbRiddleRepository) appendToList(
	ctx context.Context, id, attribute string, values any,
) (*entity.Riddle, error) {
	expr, err := expression.NewBuilder().
		WithUpdate(expression.Set(
			expression.Name(attribute),
			expression.Name(attribute).ListAppend(expression.Value(values)),
		)).
		WithCondition(expression.AttributeExists(expression.Name("location_riddle_id"))).
		Build()
	if err != nil {
		return nil, err
	}

	_, err = r.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       riddleKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("cannot append %s of riddle %s: %w", attribute, id, err)
	}

	return r.GetByID(ctx, id)
}

func riddleKey(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"location_riddle_id": {S: aws.String(id)},
	}
}
