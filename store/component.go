package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/components/internal/expr"
)

// Attribute names of a component row.
const (
	AttrComponentID = "componentID"
	AttrName        = "name"
	AttrDescription = "description"
	AttrStatus      = "status"
	AttrOrder       = "order"
)

// Component is a single service component row.
type Component struct {
	ComponentID string `json:"componentID" dynamodbav:"componentID"`
	Name        string `json:"name" dynamodbav:"name"`
	Description string `json:"description" dynamodbav:"description"`
	Status      string `json:"status" dynamodbav:"status"`
	Order       int    `json:"order" dynamodbav:"order"`
}

// Fields is a partial update. Nil fields are left untouched in storage.
type Fields struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

// exprFields lists the supplied fields in a fixed order.
func (f Fields) exprFields() []expr.Field {
	fields := make([]expr.Field, 0, 4)
	if f.Name != nil {
		fields = append(fields, expr.Field{Name: AttrName, Value: *f.Name})
	}
	if f.Description != nil {
		fields = append(fields, expr.Field{Name: AttrDescription, Value: *f.Description})
	}
	if f.Status != nil {
		fields = append(fields, expr.Field{Name: AttrStatus, Value: *f.Status})
	}
	if f.Order != nil {
		fields = append(fields, expr.Field{Name: AttrOrder, Value: *f.Order})
	}
	return fields
}

// FillDefaults sets each key of defaults on item only when item lacks it.
// The item is modified in place; a nil item yields a new map.
func FillDefaults(defaults, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		item = make(map[string]types.AttributeValue, len(defaults))
	}
	for k, v := range defaults {
		if _, exists := item[k]; !exists {
			item[k] = v
		}
	}
	return item
}

// descriptionDefault returns the defaults map that back-fills description with value.
func descriptionDefault(value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrDescription: &types.AttributeValueMemberS{Value: value},
	}
}

// componentKey returns the primary key for componentID.
func componentKey(componentID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrComponentID: &types.AttributeValueMemberS{Value: componentID},
	}
}

// decodeComponent back-fills item with defaults and unmarshals it.
func decodeComponent(item, defaults map[string]types.AttributeValue) (*Component, error) {
	item = FillDefaults(defaults, item)

	var c Component
	if err := attributevalue.UnmarshalMap(item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal component: %w", err)
	}
	return &c, nil
}
