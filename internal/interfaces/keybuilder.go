package interfaces

// KeyBuilder derives deterministic store keys for a player
type KeyBuilder interface {
	// DataKey is the key of the cached profile
	DataKey(username string) string
	// LastFetchKey is the key of the last live fetch timestamp
	LastFetchKey(username string) string
	// LastManualRefreshKey is the key of the last manual refresh timestamp
	LastManualRefreshKey(username string) string
}
