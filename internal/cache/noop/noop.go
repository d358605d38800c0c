package noop

import (
	"context"

	"go-player-tracker/internal/interfaces"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is a no-operation cache implementation for disabled levels
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance
func NewNoOpCache() interfaces.Cache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing
func (n *NoOpCache) Set(_ context.Context, _ string, _ []byte) error {
	return nil
}

// Delete does nothing
func (n *NoOpCache) Delete(_ context.Context, _ string) error {
	return nil
}
