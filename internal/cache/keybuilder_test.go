package cache

import (
	"testing"
)

func TestKeyBuilder_Keys(t *testing.T) {
	kb := NewKeyBuilder()

	tests := []struct {
		name     string
		username string
		build    func(string) string
		wantKey  string
	}{
		{
			name:     "data key",
			username: "zezima",
			build:    kb.DataKey,
			wantKey:  "player:zezima:data",
		},
		{
			name:     "last fetch key",
			username: "zezima",
			build:    kb.LastFetchKey,
			wantKey:  "player:zezima:last_fetch",
		},
		{
			name:     "last manual refresh key",
			username: "zezima",
			build:    kb.LastManualRefreshKey,
			wantKey:  "player:zezima:last_manual_refresh",
		},
		{
			name:     "name with space",
			username: "le me",
			build:    kb.DataKey,
			wantKey:  "player:le me:data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build(tt.username); got != tt.wantKey {
				t.Errorf("key = %q, want %q", got, tt.wantKey)
			}
		})
	}
}

func TestKeyBuilder_DistinctPerPlayer(t *testing.T) {
	kb := NewKeyBuilder()

	keys := map[string]struct{}{}
	for _, name := range []string{"alice", "bob"} {
		for _, key := range []string{kb.DataKey(name), kb.LastFetchKey(name), kb.LastManualRefreshKey(name)} {
			if _, dup := keys[key]; dup {
				t.Errorf("duplicate key %q", key)
			}
			keys[key] = struct{}{}
		}
	}

	if len(keys) != 6 {
		t.Errorf("expected 6 distinct keys, got %d", len(keys))
	}
}
