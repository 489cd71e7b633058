package store

import (
	"context"
	"sync"
	"time"

	"github.com/jcalabro/hpss"
)

// Memory is an in-memory SetStore used by tests and by the CLI's
// non-persistent modes.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

func (m *Memory) Save(ctx context.Context, requestID string, sets []hpss.OutputSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[requestID]; exists {
		return ErrAlreadyExists
	}
	cp := make([]hpss.OutputSet, len(sets))
	copy(cp, sets)
	m.records[requestID] = Record{RequestID: requestID, Sets: cp, CreatedAt: now()}
	return nil
}

func (m *Memory) Sets(ctx context.Context, requestID string) ([]hpss.OutputSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[requestID]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Sets, nil
}

func (m *Memory) Set(ctx context.Context, requestID string, setIndex int) (hpss.OutputSet, error) {
	sets, err := m.Sets(ctx, requestID)
	if err != nil {
		return hpss.OutputSet{}, err
	}
	for _, s := range sets {
		if s.Index == setIndex {
			return s, nil
		}
	}
	return hpss.OutputSet{}, ErrNotFound
}

func (m *Memory) Delete(ctx context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[requestID]; !ok {
		return ErrNotFound
	}
	delete(m.records, requestID)
	return nil
}

// now is a var so tests can freeze it if needed; production code just
// calls time.Now.
var now = time.Now
