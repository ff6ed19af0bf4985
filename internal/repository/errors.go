package repository

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when a conditional write found a
	// conflicting record.
	ErrAlreadyExists = errors.New("record already exists")
)

func isConditionalCheckFailed(err error) bool {
	var awsErr awserr.Error
	if !errors.As(err, &awsErr) {
		return false
	}

	return awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}
