package s3

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDBClient is an in-memory DDBClient for unit tests.
type fakeDDBClient struct {
	items map[string]map[string]types.AttributeValue
}

func newFakeDDBClient() *fakeDDBClient {
	return &fakeDDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDDBClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	digest := params.Key["digest"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[digest]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	digest := params.Item["digest"].(*types.AttributeValueMemberS).Value
	f.items[digest] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDDBDedupIndex_RecordAndLookup(t *testing.T) {
	ctx := context.Background()
	index := NewDDBDedupIndex(newFakeDDBClient(), "dataref-dedup")

	_, ok, err := index.Lookup(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, index.Record(ctx, "abc123", "payloads/abc123"))

	key, ok, err := index.Lookup(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payloads/abc123", key)
}

func TestDDBDedupIndex_RecordIsIdempotent(t *testing.T) {
	ctx := context.Background()
	index := NewDDBDedupIndex(newFakeDDBClient(), "dataref-dedup")

	require.NoError(t, index.Record(ctx, "d", "payloads/d"))
	require.NoError(t, index.Record(ctx, "d", "payloads/d"))

	key, ok, err := index.Lookup(ctx, "d")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payloads/d", key)
}
