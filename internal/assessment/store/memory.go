package store

import (
	"context"
	"sort"
	"sync"

	"fairmeter/internal/assessment/models"
	"fairmeter/pkg/domain"
	"fairmeter/pkg/platform/sentinel"
)

// Memory is a threadsafe in-memory store.
type Memory struct {
	mu    sync.RWMutex
	items map[domain.AssessmentID]*models.Assessment
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[domain.AssessmentID]*models.Assessment)}
}

func (m *Memory) Save(_ context.Context, a *models.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *Memory) FindByID(_ context.Context, id domain.AssessmentID) (*models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.items[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *Memory) List(_ context.Context, limit, offset int) ([]*models.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*models.Assessment, 0, len(m.items))
	for _, a := range m.items {
		cp := *a
		all = append(all, &cp)
	}
	// Newest first; ties broken by ID for a stable order.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *Memory) Delete(_ context.Context, id domain.AssessmentID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *Memory) Close() error { return nil }
