package store_test

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/components/store"
)

// fakeDynamoDB is an in-memory single-table stand-in for the DynamoDB client.
// Override funcs take precedence over the in-memory behaviour.
type fakeDynamoDB struct {
	mu    sync.Mutex
	order []string
	rows  map[string]map[string]types.AttributeValue

	ScanOverride       func(context.Context, *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	GetItemOverride    func(context.Context, *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	UpdateItemOverride func(context.Context, *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	DeleteItemOverride func(context.Context, *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)

	scanInputs   []*dynamodb.ScanInput
	getInputs    []*dynamodb.GetItemInput
	updateInputs []*dynamodb.UpdateItemInput
	deleteInputs []*dynamodb.DeleteItemInput
}

var _ store.API = (*fakeDynamoDB)(nil)

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{rows: make(map[string]map[string]types.AttributeValue)}
}

// put stores a raw row keyed by its componentID.
func (f *fakeDynamoDB) put(row map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := row["componentID"].(*types.AttributeValueMemberS).Value
	if _, exists := f.rows[id]; !exists {
		f.order = append(f.order, id)
	}
	f.rows[id] = copyItem(row)
}

// stored returns a copy of the stored row, or nil.
func (f *fakeDynamoDB) stored(id string) map[string]types.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		return copyItem(r)
	}
	return nil
}

func (f *fakeDynamoDB) Scan(ctx context.Context, input *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	f.scanInputs = append(f.scanInputs, input)
	f.mu.Unlock()
	if f.ScanOverride != nil {
		return f.ScanOverride(ctx, input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := &dynamodb.ScanOutput{}
	for _, id := range f.order {
		r, ok := f.rows[id]
		if !ok {
			continue
		}
		projected := make(map[string]types.AttributeValue)
		for _, attr := range input.ExpressionAttributeNames {
			if v, ok := r[attr]; ok {
				projected[attr] = v
			}
		}
		out.Items = append(out.Items, projected)
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, input *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	f.getInputs = append(f.getInputs, input)
	f.mu.Unlock()
	if f.GetItemOverride != nil {
		return f.GetItemOverride(ctx, input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: f.stored(keyID(input.Key))}, nil
}

// UpdateItem applies "SET #a = :a, ..." expressions and upserts like DynamoDB does.
func (f *fakeDynamoDB) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	f.updateInputs = append(f.updateInputs, input)
	f.mu.Unlock()
	if f.UpdateItemOverride != nil {
		return f.UpdateItemOverride(ctx, input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	id := keyID(input.Key)
	r, ok := f.rows[id]
	if !ok {
		r = copyItem(input.Key)
		f.rows[id] = r
		f.order = append(f.order, id)
	}
	for alias, attr := range input.ExpressionAttributeNames {
		if v, ok := input.ExpressionAttributeValues[":"+strings.TrimPrefix(alias, "#")]; ok {
			r[attr] = v
		}
	}

	out := &dynamodb.UpdateItemOutput{}
	if input.ReturnValues == types.ReturnValueAllNew {
		out.Attributes = copyItem(r)
	}
	return out, nil
}

func (f *fakeDynamoDB) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	f.deleteInputs = append(f.deleteInputs, input)
	f.mu.Unlock()
	if f.DeleteItemOverride != nil {
		return f.DeleteItemOverride(ctx, input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, keyID(input.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func keyID(key map[string]types.AttributeValue) string {
	if v, ok := key["componentID"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

// row builds a raw component row; an empty description is left absent.
func row(id, name, description, status string, order int) map[string]types.AttributeValue {
	r := map[string]types.AttributeValue{
		"componentID": &types.AttributeValueMemberS{Value: id},
		"name":        &types.AttributeValueMemberS{Value: name},
		"status":      &types.AttributeValueMemberS{Value: status},
		"order":       &types.AttributeValueMemberN{Value: strconv.Itoa(order)},
	}
	if description != "" {
		r["description"] = &types.AttributeValueMemberS{Value: description}
	}
	return r
}
