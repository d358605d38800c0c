package interfaces

import "context"

//go:generate mockgen -package=mock -source=timestamps.go -destination=mock/timestamps.go

// TimestampStore is a durable key to millisecond timestamp map
type TimestampStore interface {
	// Get returns the stored timestamp, or 0 if unset or unparseable
	Get(ctx context.Context, key string) (int64, error)
	// Set stores the timestamp
	Set(ctx context.Context, key string, value int64) error
}
