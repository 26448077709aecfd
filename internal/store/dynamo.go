package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Table key attributes. All collections share one table; the collection
// name is the partition key and the document id the sort key.
const (
	attrCollection = "collection"
	attrID         = "id"
)

// DynamoStore is a Store backed by a single DynamoDB table.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoStore creates a DynamoStore over an existing client.
func NewDynamoStore(client *dynamodb.Client, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// NewDynamoStoreFromEnv builds a DynamoStore from the default AWS
// configuration chain (env, shared config, instance role).
func NewDynamoStoreFromEnv(ctx context.Context, table string) (*DynamoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewDynamoStore(dynamodb.NewFromConfig(cfg), table), nil
}

func (s *DynamoStore) Insert(ctx context.Context, collection string, fields map[string]interface{}) (Document, error) {
	item, err := attributevalue.MarshalMap(fields)
	if err != nil {
		return Document{}, fmt.Errorf("failed to marshal document fields: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	item[attrCollection] = &types.AttributeValueMemberS{Value: collection}
	item[attrID] = &types.AttributeValueMemberS{Value: id}
	item[FieldCreatedAt] = &types.AttributeValueMemberS{Value: createdAt}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return Document{}, fmt.Errorf("failed to insert document: %w", err)
	}

	stored := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		stored[k] = v
	}
	stored[FieldCreatedAt] = createdAt
	return Document{ID: id, Fields: stored}, nil
}

func (s *DynamoStore) Query(ctx context.Context, collection string, filters Filters) ([]Document, error) {
	builder := expression.NewBuilder().
		WithKeyCondition(expression.Key(attrCollection).Equal(expression.Value(collection)))

	if len(filters) > 0 {
		var cond expression.ConditionBuilder
		first := true
		for key, want := range filters {
			c := expression.Name(key).Equal(expression.Value(want))
			if first {
				cond = c
				first = false
			} else {
				cond = cond.And(c)
			}
		}
		builder = builder.WithFilter(cond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var docs []Document
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
		}
		for _, item := range page.Items {
			doc, err := parseItem(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *DynamoStore) Delete(ctx context.Context, collection string, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			attrCollection: &types.AttributeValueMemberS{Value: collection},
			attrID:         &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}

func parseItem(item map[string]types.AttributeValue) (Document, error) {
	var fields map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &fields); err != nil {
		return Document{}, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	id, _ := fields[attrID].(string)
	delete(fields, attrID)
	delete(fields, attrCollection)
	return Document{ID: id, Fields: fields}, nil
}
