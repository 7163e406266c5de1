// Package store provides a DynamoDB data access layer for service components.
//
// A service component is a named, ordered, status-tagged row keyed by componentID.
// The store reads and partially updates existing rows; rows are created outside
// this package.
//
// # Operations
//
//   - [Store.List] scans the table, projecting componentID, description, name, status and order
//   - [Store.Get] looks a row up by componentID
//   - [Store.Update] writes only the supplied [Fields] and returns the new row
//   - [Store.UpdateStatus] writes only the status
//   - [Store.Delete] removes a row by componentID
//
// Every returned [Component] has a description: rows stored without one are
// back-filled with "" (or, for Update, with the supplied description).
//
// # Configuration
//
// Use [DefaultConfig], or load one with [ConfigFromEnvironment] or [ConfigFromYaml]:
//
//	cfg, err := store.ConfigFromEnvironment() // COMPONENTS_TABLE, AWS_REGION, DYNAMODB_ENDPOINT
//	s, err := store.NewFromConfig(ctx, cfg)
//
// Tests can pass any [API] implementation to [New].
//
// # Errors
//
//   - [ErrNotFound] - Get found no row with the key
//   - [*StoreError] - any other DynamoDB failure, with the cause preserved
//
// Cancelling the context aborts the in-flight request; the StoreError then
// unwraps to context.Canceled or context.DeadlineExceeded.
package store
