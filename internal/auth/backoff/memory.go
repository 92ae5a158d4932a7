package backoff

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in process. It suits a single replica.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	return rec, ok, nil
}

func (m *MemoryStore) Increment(_ context.Context, key string, now time.Time, p Policy) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[key]
	if !ok || p.Stale(rec, now) {
		rec = Record{}
	}
	rec.Count++
	rec.Until = now.Add(p.Delay(rec.Count))
	m.records[key] = rec
	return rec, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

// Prune drops stale records and returns how many were removed.
func (m *MemoryStore) Prune(now time.Time, p Policy) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for key, rec := range m.records {
		if p.Stale(rec, now) {
			delete(m.records, key)
			n++
		}
	}
	return n
}

func (m *MemoryStore) Ping(context.Context) error { return nil }
func (m *MemoryStore) Close() error               { return nil }
