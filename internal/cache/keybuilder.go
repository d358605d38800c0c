package cache

import (
	"go-player-tracker/internal/interfaces"
)

const keyPrefix = "player:"

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// DataKey returns player:<username>:data
func (kb *KeyBuilderImpl) DataKey(username string) string {
	return build(username, "data")
}

// LastFetchKey returns player:<username>:last_fetch
func (kb *KeyBuilderImpl) LastFetchKey(username string) string {
	return build(username, "last_fetch")
}

// LastManualRefreshKey returns player:<username>:last_manual_refresh
func (kb *KeyBuilderImpl) LastManualRefreshKey(username string) string {
	return build(username, "last_manual_refresh")
}

func build(username, suffix string) string {
	return keyPrefix + username + ":" + suffix
}
