package tracker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-player-tracker/internal/models"
)

type memTimestamps struct {
	mu      sync.Mutex
	values  map[string]int64
	readErr error
	sets    int
}

func newMemTimestamps() *memTimestamps {
	return &memTimestamps{values: map[string]int64{}}
}

func (m *memTimestamps) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.values[key], nil
}

func (m *memTimestamps) Set(_ context.Context, key string, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.sets++
	return nil
}

func (m *memTimestamps) snapshot() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

type memSnapshotCache struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
	setErr   error
	// onGet runs before every read, outside the lock
	onGet func()
}

func newMemSnapshotCache() *memSnapshotCache {
	return &memSnapshotCache{profiles: map[string]*models.Profile{}}
}

func (m *memSnapshotCache) Get(_ context.Context, username string) (*models.Profile, bool) {
	if m.onGet != nil {
		m.onGet()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[username]
	return p, ok
}

func (m *memSnapshotCache) Set(_ context.Context, username string, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.profiles[username] = profile
	return nil
}

func (m *memSnapshotCache) evict(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, username)
}

// scriptedFetcher returns a new profile per call, tagged with the call number
// in Skills.XP, unless fn overrides it
type scriptedFetcher struct {
	calls atomic.Int32
	fn    func(ctx context.Context, call int32) (*models.Profile, error)
}

func (f *scriptedFetcher) FetchProfile(ctx context.Context, username string) (*models.Profile, error) {
	call := f.calls.Add(1)
	if f.fn != nil {
		return f.fn(ctx, call)
	}
	return &models.Profile{Username: username, Skills: models.SkillSummary{XP: int64(call)}}, nil
}

type recordingPersister struct {
	mu      sync.Mutex
	records []time.Time
	err     error
}

func (p *recordingPersister) Persist(_ context.Context, _ *models.Player, _ *models.Profile, at time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, at)
	return nil
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.records)
}
