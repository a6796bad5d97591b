package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DDBDedupIndex implements blobstore.DedupIndex backed by DynamoDB. It maps
// content digests to the S3 keys they were stored under, so re-uploading
// identical content skips the S3 write and yields the existing reference.
//
// Table schema:
//   - Partition key: digest (string) - the hex content digest
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name dataref-dedup \
//	  --attribute-definitions AttributeName=digest,AttributeType=S \
//	  --key-schema AttributeName=digest,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type DDBDedupIndex struct {
	client    DDBClient
	tableName string
}

// NewDDBDedupIndex creates a dedup index on the given DynamoDB table.
func NewDDBDedupIndex(client DDBClient, tableName string) *DDBDedupIndex {
	return &DDBDedupIndex{
		client:    client,
		tableName: tableName,
	}
}

// Lookup returns the blob key a digest was previously recorded under.
func (d *DDBDedupIndex) Lookup(ctx context.Context, digest string) (string, bool, error) {
	resp, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"digest": &types.AttributeValueMemberS{Value: digest},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Item) == 0 {
		return "", false, nil
	}

	keyAttr, ok := resp.Item["blob_key"].(*types.AttributeValueMemberS)
	if !ok {
		return "", false, errors.New("invalid blob_key attribute in DynamoDB")
	}
	return keyAttr.Value, true, nil
}

// Record associates a digest with the blob key it was stored under.
// Recording the same digest twice is harmless; the key is derived from the
// content, so both writes carry the same value.
func (d *DDBDedupIndex) Record(ctx context.Context, digest, key string) error {
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item: map[string]types.AttributeValue{
			"digest":   &types.AttributeValueMemberS{Value: digest},
			"blob_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write DynamoDB: %w", err)
	}
	return nil
}
