package store

import (
	"errors"

	"github.com/aws/smithy-go"
	pkgerrors "github.com/pkg/errors"
)

// ErrNotFound is returned by Get when no row has the requested componentID.
var ErrNotFound = errors.New("no matched item")

// storeLabel identifies the storage layer as the origin of a StoreError.
const storeLabel = "DynamoDB"

// StoreError wraps any failure returned by the backing DynamoDB table.
type StoreError struct {
	// Label is always "DynamoDB".
	Label string

	// Op is the DynamoDB operation that failed (e.g. "Scan", "UpdateItem").
	Op string

	// Err is the underlying cause.
	Err error
}

func newStoreError(op string, err error) *StoreError {
	return &StoreError{
		Label: storeLabel,
		Op:    op,
		Err:   pkgerrors.WithStack(err),
	}
}

func (e *StoreError) Error() string {
	return e.Label + ": " + e.Op + ": " + pkgerrors.Cause(e.Err).Error()
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through the wrapper.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Cause implements the github.com/pkg/errors causer interface.
func (e *StoreError) Cause() error {
	return pkgerrors.Cause(e.Err)
}

// Code returns the AWS API error code of the cause, or "" when the failure
// did not come from the service (network errors, cancellation).
func (e *StoreError) Code() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsStoreError reports whether err is, or wraps, a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
