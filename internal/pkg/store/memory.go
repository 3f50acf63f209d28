package store

import (
	"context"
	"sort"
	"sync"

	"quiz/internal/pkg/quiz"
)

// MemoryStore keeps records in process memory. Records are listed in id order.
type MemoryStore struct {
	records map[int64]quiz.Record
	nextID  int64
	mu      sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]quiz.Record),
		nextID:  1,
	}
}

func (m *MemoryStore) FindAll(_ context.Context) ([]quiz.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]quiz.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id int64) (quiz.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return quiz.Record{}, &quiz.NotFoundError{ID: id}
}

func (m *MemoryStore) Create(_ context.Context, fields quiz.Fields) (quiz.Record, error) {
	if err := quiz.Check(fields); err != nil {
		return quiz.Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := quiz.Record{ID: m.nextID, Fields: fields}
	m.records[r.ID] = r
	m.nextID++
	return r, nil
}

func (m *MemoryStore) Update(_ context.Context, record quiz.Record) (quiz.Record, error) {
	if err := quiz.Check(record.Fields); err != nil {
		return quiz.Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[record.ID]; !ok {
		return quiz.Record{}, &quiz.NotFoundError{ID: record.ID}
	}
	m.records[record.ID] = record
	return record, nil
}

func (m *MemoryStore) Destroy(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
