package tracker

import "time"

// Decision is the outcome of the freshness policy
type Decision int

const (
	// DecisionUseCache serves the cached profile, fetching only if it is missing
	DecisionUseCache Decision = iota
	// DecisionFetchAndUpdateBoth fetches and advances both timestamps
	DecisionFetchAndUpdateBoth
	// DecisionFetchAndUpdateFetchOnly fetches and advances only the fetch timestamp
	DecisionFetchAndUpdateFetchOnly
)

func (d Decision) String() string {
	switch d {
	case DecisionUseCache:
		return "use_cache"
	case DecisionFetchAndUpdateBoth:
		return "fetch_update_both"
	case DecisionFetchAndUpdateFetchOnly:
		return "fetch_update_fetch_only"
	default:
		return "unknown"
	}
}

// Decide applies the freshness policy. All instants are Unix milliseconds and
// an unset timestamp is 0.
//
// A manual request whose cooldown has passed always fetches, bypassing the
// cache. Any other request uses the cache while it is fresh and fetches once it
// is stale; in that case the manual refresh timestamp is not advanced, even for
// manual requests.
func Decide(now, lastFetch, lastManualRefresh int64, manual bool, ttl, manualTTL time.Duration) Decision {
	cacheIsFresh := now-lastFetch < ttl.Milliseconds()
	manualCooldownPassed := now-lastManualRefresh >= manualTTL.Milliseconds()

	switch {
	case manual && manualCooldownPassed:
		return DecisionFetchAndUpdateBoth
	case cacheIsFresh:
		return DecisionUseCache
	default:
		return DecisionFetchAndUpdateFetchOnly
	}
}
