package models

// CacheLevel identifies the cache level that served a value
type CacheLevel string

const (
	CacheLevelL1   CacheLevel = "L1"
	CacheLevelL2   CacheLevel = "L2"
	CacheLevelMiss CacheLevel = "MISS"
)

// CacheResult is the outcome of a level-aware lookup
type CacheResult struct {
	Data  []byte
	Found bool
	Level CacheLevel
	Err   error
}
