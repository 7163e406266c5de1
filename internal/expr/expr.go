// Package expr builds DynamoDB expression artifacts for partial updates and projections.
package expr

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Field is a single attribute assignment. A nil Value means the field was not supplied.
type Field struct {
	Name  string
	Value any
}

// Update holds the three pieces of an UpdateItem request.
type Update struct {
	Expression string
	Names      map[string]string
	Values     map[string]types.AttributeValue
}

// Empty reports whether the update assigns nothing.
func (u Update) Empty() bool {
	return u.Expression == ""
}

// BuildUpdate produces a SET expression covering every supplied field, in input order.
// Attribute names are always aliased so reserved words (name, status, order) are safe.
func BuildUpdate(fields []Field) (Update, error) {
	var clauses []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		av, err := attributevalue.Marshal(f.Value)
		if err != nil {
			return Update{}, fmt.Errorf("marshal %s: %w", f.Name, err)
		}
		nameKey := "#" + f.Name
		valueKey := ":" + f.Name
		names[nameKey] = f.Name
		values[valueKey] = av
		clauses = append(clauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}

	if len(clauses) == 0 {
		return Update{}, nil
	}

	return Update{
		Expression: "SET " + strings.Join(clauses, ", "),
		Names:      names,
		Values:     values,
	}, nil
}

// Projection returns a projection expression over attrs with every name aliased.
func Projection(attrs ...string) (string, map[string]string) {
	names := make(map[string]string, len(attrs))
	aliases := make([]string, 0, len(attrs))
	for _, a := range attrs {
		alias := "#" + a
		names[alias] = a
		aliases = append(aliases, alias)
	}
	return strings.Join(aliases, ", "), names
}
