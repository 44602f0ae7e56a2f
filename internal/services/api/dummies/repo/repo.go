// Package repo provides dummy storage on postgres, with an in memory fallback
package repo

import (
	"context"
	"time"

	"dashkit/internal/modkit/repokit"
	"dashkit/internal/platform/store"
	"dashkit/internal/services/api/dummies/domain"

	"github.com/google/uuid"
)

// Repo is the write and point read contract for dummies.
// Missing records surface as perr.ErrNotFound
type Repo interface {
	Insert(ctx context.Context, d domain.Dummy) (domain.Dummy, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Dummy, error)
	Update(ctx context.Context, id uuid.UUID, in domain.UpdateInput, at time.Time) (domain.Dummy, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Dummy, error)
}

const columns = "id, name, description, created_at, updated_at"

// Table maps the dummy listing onto the dummies relation
var Table = repokit.Table[domain.Dummy]{
	Name: "dummies",
	ID:   domain.FieldID,
	Columns: map[string]string{
		domain.FieldID:          "id",
		domain.FieldName:        "name",
		domain.FieldDescription: "description",
		domain.FieldCreatedAt:   "created_at",
		domain.FieldUpdatedAt:   "updated_at",
	},
	Select: columns,
	Scan:   scanDummy,
}

func scanDummy(r repokit.Row) (domain.Dummy, error) {
	var d domain.Dummy
	err := r.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

type (
	// PG implements Repo on postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: repokit.RequireQueryer(q)} }

func (r *queries) Insert(ctx context.Context, d domain.Dummy) (domain.Dummy, error) {
	const sql = `INSERT INTO dummies (` + columns + `) VALUES ($1, $2, $3, $4, $5) RETURNING ` + columns
	return store.One(ctx, r.q, scanDummy, sql, d.ID, d.Name, d.Description, d.CreatedAt, d.UpdatedAt)
}

func (r *queries) Get(ctx context.Context, id uuid.UUID) (domain.Dummy, error) {
	const sql = `SELECT ` + columns + ` FROM dummies WHERE id = $1`
	return store.One(ctx, r.q, scanDummy, sql, id)
}

func (r *queries) Update(ctx context.Context, id uuid.UUID, in domain.UpdateInput, at time.Time) (domain.Dummy, error) {
	const sql = `UPDATE dummies
SET name = COALESCE($2, name), description = COALESCE($3, description), updated_at = $4
WHERE id = $1
RETURNING ` + columns
	return store.One(ctx, r.q, scanDummy, sql, id, in.Name, in.Description, at)
}

func (r *queries) Delete(ctx context.Context, id uuid.UUID) (domain.Dummy, error) {
	const sql = `DELETE FROM dummies WHERE id = $1 RETURNING ` + columns
	return store.One(ctx, r.q, scanDummy, sql, id)
}
