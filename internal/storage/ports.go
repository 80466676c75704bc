package storage

import "context"

// Keys under which the budget is persisted.
const (
	KeyIncome  = "income"
	KeyEntries = "entries"
)

// KeyValueStore is the durable storage the budget is saved to.
type KeyValueStore interface {
	// Load returns the stored value and whether the key exists.
	Load(ctx context.Context, key string) (value string, ok bool, err error)

	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
