package record

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/erazemk/registro/internal/model"
	"github.com/erazemk/registro/internal/query"
)

// memStore is an in-memory Store used to test the lifecycle rules in isolation.
type memStore struct {
	mu      sync.Mutex
	records []model.Record
	nextID  int64
	failErr error
}

var errStoreDown = errors.New("store unavailable")

func (m *memStore) Create(_ context.Context, r *model.Record) (*model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	m.nextID++
	stored := *r
	stored.ID = m.nextID
	m.records = append(m.records, stored)
	return &stored, nil
}

func (m *memStore) find(id int64) int {
	return slices.IndexFunc(m.records, func(r model.Record) bool { return r.ID == id })
}

func (m *memStore) Get(_ context.Context, id int64) (*model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	i := m.find(id)
	if i < 0 {
		return nil, nil
	}
	r := m.records[i]
	return &r, nil
}

func (m *memStore) Update(_ context.Context, r *model.Record) (*model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(r.ID)
	if i < 0 || !m.records[i].Active() {
		return nil, nil
	}
	cur := &m.records[i]
	cur.Name, cur.Surname, cur.Amount = r.Name, r.Surname, r.Amount
	cur.Country, cur.AgentType, cur.Date = r.Country, r.AgentType, r.Date
	out := *cur
	return &out, nil
}

func (m *memStore) Deactivate(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 || !m.records[i].Active() {
		return false, nil
	}
	m.records[i].Status = model.StatusInactive
	return true, nil
}

func (m *memStore) SetDate(_ context.Context, id int64, date time.Time) (*model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return nil, nil
	}
	m.records[i].Date = date
	out := m.records[i]
	return &out, nil
}

func (m *memStore) matching(preds []query.Predicate) []model.Record {
	var out []model.Record
	for _, r := range m.records {
		if query.MatchAll(preds, &r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *memStore) List(_ context.Context, preds []query.Predicate, page query.Page) ([]model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	matched := m.matching(preds)
	start := min(page.Offset(), len(matched))
	end := start + min(page.Size, len(matched)-start)
	return matched[start:end], nil
}

func (m *memStore) Count(_ context.Context, preds []query.Predicate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	return int64(len(m.matching(preds))), nil
}
