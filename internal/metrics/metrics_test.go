package metrics

import (
	"testing"
)

func TestTrackerMetrics(t *testing.T) {
	// Note: Metrics are package-level variables, automatically registered
	// This test just verifies the functions don't panic

	t.Run("RecordRequest", func(t *testing.T) {
		RecordRequest(true)
		RecordRequest(false)
	})

	t.Run("RecordDecision", func(t *testing.T) {
		RecordDecision("use_cache")
	})

	t.Run("RecordSharedFetch", func(t *testing.T) {
		RecordSharedFetch()
	})

	t.Run("RecordCacheHit", func(t *testing.T) {
		RecordCacheHit("l1")
		RecordCacheHit("l2")
	})

	t.Run("RecordCacheMiss", func(t *testing.T) {
		RecordCacheMiss()
	})

	t.Run("RecordCacheError", func(t *testing.T) {
		RecordCacheError("l1", "encode")
	})

	t.Run("RecordUpstreamFetch", func(t *testing.T) {
		RecordUpstreamFetch("profile", NoError)
		RecordUpstreamFetch("quests", TimeoutError)
	})

	t.Run("TimeUpstreamCall", func(t *testing.T) {
		timer := TimeUpstreamCall("profile")
		timer()
	})

	t.Run("RecordSnapshotPersisted", func(t *testing.T) {
		RecordSnapshotPersisted()
		RecordPersistError()
		RecordPlayerRegistered()
	})

	t.Run("UpdateCacheCapacity", func(t *testing.T) {
		UpdateCacheCapacity("l1", 1000000, 50)
	})
}
