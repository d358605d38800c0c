package models

import "time"

// Player is a tracked player identified by a canonical (lower-cased) username
type Player struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"created_at"`
	LastFetchedAt time.Time `json:"last_fetched_at"`
}
