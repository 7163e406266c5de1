package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/components/internal/expr"
)

// Store provides DynamoDB operations on the service component table.
type Store struct {
	client API
	config Config
	logger *slog.Logger
}

// New creates a new Store instance.
func New(client API, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
		logger: slog.Default(),
	}
}

// NewFromConfig creates a Store with a DynamoDB client built from config.
func NewFromConfig(ctx context.Context, config Config) (*Store, error) {
	client, err := NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return New(client, config), nil
}

// SetLogger sets the logger used for failed requests.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger
}

// Config returns the store configuration.
func (s *Store) Config() Config {
	return s.config
}

// List scans the whole table. Rows come back in storage order.
func (s *Store) List(ctx context.Context) ([]Component, error) {
	projection, names := expr.Projection(AttrComponentID, AttrDescription, AttrName, AttrStatus, AttrOrder)

	result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(s.config.TableName),
		ProjectionExpression:     aws.String(projection),
		ExpressionAttributeNames: names,
		ConsistentRead:           aws.Bool(s.config.ConsistentRead),
	})
	if err != nil {
		return nil, s.wrap("Scan", err)
	}

	components := make([]Component, 0, len(result.Items))
	for _, item := range result.Items {
		c, err := decodeComponent(item, descriptionDefault(""))
		if err != nil {
			return nil, s.wrap("Scan", err)
		}
		components = append(components, *c)
	}
	return components, nil
}

// Get retrieves a component by ID, returning ErrNotFound if no row matches.
func (s *Store) Get(ctx context.Context, componentID string) (*Component, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.config.TableName),
		Key:            componentKey(componentID),
		ConsistentRead: aws.Bool(s.config.ConsistentRead),
	})
	if err != nil {
		return nil, s.wrap("GetItem", err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	c, err := decodeComponent(result.Item, descriptionDefault(""))
	if err != nil {
		return nil, s.wrap("GetItem", err)
	}
	return c, nil
}

// Update writes the supplied fields and returns the full row after the update.
//
// The returned description is back-filled with the supplied description (or ""),
// not with the stored value, when the row comes back without one.
// With no fields supplied nothing is written and the current row is returned.
func (s *Store) Update(ctx context.Context, componentID string, fields Fields) (*Component, error) {
	update, err := expr.BuildUpdate(fields.exprFields())
	if err != nil {
		return nil, s.wrap("UpdateItem", err)
	}
	if update.Empty() {
		return s.Get(ctx, componentID)
	}

	var description string
	if fields.Description != nil {
		description = *fields.Description
	}
	return s.updateItem(ctx, componentID, update, descriptionDefault(description))
}

// UpdateStatus changes only the status of a component.
func (s *Store) UpdateStatus(ctx context.Context, componentID, status string) (*Component, error) {
	update, err := expr.BuildUpdate([]expr.Field{{Name: AttrStatus, Value: status}})
	if err != nil {
		return nil, s.wrap("UpdateItem", err)
	}
	return s.updateItem(ctx, componentID, update, descriptionDefault(""))
}

func (s *Store) updateItem(ctx context.Context, componentID string, update expr.Update, defaults map[string]types.AttributeValue) (*Component, error) {
	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.config.TableName),
		Key:                       componentKey(componentID),
		UpdateExpression:          aws.String(update.Expression),
		ExpressionAttributeNames:  update.Names,
		ExpressionAttributeValues: update.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, s.wrap("UpdateItem", err)
	}

	c, err := decodeComponent(result.Attributes, defaults)
	if err != nil {
		return nil, s.wrap("UpdateItem", err)
	}
	return c, nil
}

// Delete removes a component by ID. Deleting a missing row succeeds.
func (s *Store) Delete(ctx context.Context, componentID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.config.TableName),
		Key:          componentKey(componentID),
		ReturnValues: types.ReturnValueNone,
	})
	if err != nil {
		return s.wrap("DeleteItem", err)
	}
	return nil
}

// wrap converts a failure into a StoreError and logs it.
func (s *Store) wrap(op string, err error) error {
	se := newStoreError(op, err)
	s.logger.Debug("dynamodb request failed",
		"op", op,
		"table", s.config.TableName,
		"code", se.Code(),
		"error", err,
	)
	return se
}
