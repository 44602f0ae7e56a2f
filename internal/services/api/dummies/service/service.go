// Package service contains dummy workflows
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dashkit/internal/core/query"
	"dashkit/internal/modkit/repokit"
	perr "dashkit/internal/platform/errors"
	pstrings "dashkit/internal/platform/strings"
	"dashkit/internal/services/api/dummies/domain"
	"dashkit/internal/services/api/dummies/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for dummies
type Service interface{ domain.ServicePort }

// Svc implements Service over a Repo for writes and an executor for listings
type Svc struct {
	repo  repo.Repo
	lists *query.Executor[domain.Dummy]

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// New wires a repo and a listing source
func New(r repo.Repo, src query.Source[domain.Dummy]) *Svc {
	if r == nil {
		panic("dummies.Service requires a non nil Repo")
	}
	return &Svc{
		repo:  r,
		lists: query.NewExecutor(domain.Resource, src, domain.Dummy.Key),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewV7,
	}
}

// NewPG builds the service on postgres: writes bind to db, listings run in snapshots
func NewPG(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("dummies.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("dummies.Service requires a non nil Repo binder")
	}
	return New(binder.Bind(db), repokit.NewListSource(db, repo.Table))
}

// NewMemory builds the service on an in memory store
func NewMemory(m *repo.Memory) *Svc { return New(m, m) }

// Create stores a new dummy; a blank description is stored as NULL
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Dummy, error) {
	id, err := s.idFor(in.ID)
	if err != nil {
		return domain.Dummy{}, err
	}
	now := s.now()
	d, err := s.repo.Insert(ctx, domain.Dummy{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: pstrings.NilIfBlank(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Dummy{}, storeErr(err, id, "dummy.create")
	}
	return d, nil
}

// Get returns one dummy or a not found error
func (s *Svc) Get(ctx context.Context, raw string) (domain.Dummy, error) {
	id, err := parseID(raw)
	if err != nil {
		return domain.Dummy{}, err
	}
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Dummy{}, storeErr(err, id, "dummy.get")
	}
	return d, nil
}

// Update changes the provided fields and bumps updatedAt
func (s *Svc) Update(ctx context.Context, raw string, in domain.UpdateInput) (domain.Dummy, error) {
	id, err := parseID(raw)
	if err != nil {
		return domain.Dummy{}, err
	}
	if in.Empty() {
		return domain.Dummy{}, perr.Validationf("at least one of name or description is required")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	d, err := s.repo.Update(ctx, id, in, s.now())
	if err != nil {
		return domain.Dummy{}, storeErr(err, id, "dummy.update")
	}
	return d, nil
}

// Delete removes a dummy and returns what was removed
func (s *Svc) Delete(ctx context.Context, raw string) (domain.Dummy, error) {
	id, err := parseID(raw)
	if err != nil {
		return domain.Dummy{}, err
	}
	d, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Dummy{}, storeErr(err, id, "dummy.delete")
	}
	return d, nil
}

// ListOffset returns one offset page of dummies
func (s *Svc) ListOffset(ctx context.Context, raw query.RawQuery) (query.OffsetPage[domain.Dummy], error) {
	return s.lists.ListOffset(ctx, query.Normalize(raw))
}

// ListCursor returns one cursor page of dummies
func (s *Svc) ListCursor(ctx context.Context, raw query.RawQuery) (query.CursorPage[domain.Dummy], error) {
	return s.lists.ListCursor(ctx, query.Normalize(raw))
}

func (s *Svc) idFor(raw string) (uuid.UUID, error) {
	if raw != "" {
		return parseID(raw)
	}
	id, err := s.newID()
	if err != nil {
		return uuid.Nil, perr.Wrap(err, perr.ErrorCodeUnknown, "generate dummy id")
	}
	return id, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, perr.WithField(perr.Validationf("%q is not a valid dummy id", raw), domain.FieldID)
	}
	return id, nil
}

// storeErr maps storage failures onto the error taxonomy; already classified errors pass through
func storeErr(err error, id uuid.UUID, op string) error {
	if errors.Is(err, perr.ErrNotFound) {
		return perr.WithOp(perr.NotFoundf("dummy %s not found", id), op)
	}
	if _, ok := perr.As(err); ok {
		return perr.WithOp(err, op)
	}
	return perr.WithOp(perr.AttachFieldFromPg(perr.FromPostgresf(err, "dummy %s", id)), op)
}
