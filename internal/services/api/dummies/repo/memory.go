package repo

import (
	"context"
	"sync"
	"time"

	"dashkit/internal/core/query"
	"dashkit/internal/core/query/memsource"
	perr "dashkit/internal/platform/errors"
	"dashkit/internal/services/api/dummies/domain"

	"github.com/google/uuid"
)

// Memory keeps dummies in process. It is both the Repo and the listing source
type Memory struct {
	mu  sync.Mutex // serializes read-modify-write on src
	src *memsource.Source[domain.Dummy]
}

var _ query.Source[domain.Dummy] = (*Memory)(nil)

// NewMemory builds an in memory store seeded with items
func NewMemory(items ...domain.Dummy) *Memory {
	return &Memory{src: memsource.New(domain.Dummy.Value, domain.Dummy.Key, items...)}
}

// Snapshot implements query.Source
func (m *Memory) Snapshot(ctx context.Context, fn func(r query.Reader[domain.Dummy]) error) error {
	return m.src.Snapshot(ctx, fn)
}

// Insert stores d; an existing id is a duplicate key
func (m *Memory) Insert(_ context.Context, d domain.Dummy) (domain.Dummy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.src.Get(d.Key()); ok {
		return domain.Dummy{}, perr.WithField(perr.DuplicateKeyf("dummy %s already exists", d.ID), domain.FieldID)
	}
	m.src.Put(d)
	return d, nil
}

// Get returns the dummy with id
func (m *Memory) Get(_ context.Context, id uuid.UUID) (domain.Dummy, error) {
	d, ok := m.src.Get(id.String())
	if !ok {
		return domain.Dummy{}, perr.ErrNotFound
	}
	return d, nil
}

// Update applies the non nil fields of in
func (m *Memory) Update(_ context.Context, id uuid.UUID, in domain.UpdateInput, at time.Time) (domain.Dummy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.src.Get(id.String())
	if !ok {
		return domain.Dummy{}, perr.ErrNotFound
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Description != nil {
		d.Description = in.Description
	}
	d.UpdatedAt = at
	m.src.Put(d)
	return d, nil
}

// Delete removes and returns the dummy with id
func (m *Memory) Delete(_ context.Context, id uuid.UUID) (domain.Dummy, error) {
	d, ok := m.src.Delete(id.String())
	if !ok {
		return domain.Dummy{}, perr.ErrNotFound
	}
	return d, nil
}
