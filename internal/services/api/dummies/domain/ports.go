package domain

import (
	"context"

	"dashkit/internal/core/query"
)

// ServicePort defines the service contract for dummies
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Dummy, error)
	Get(ctx context.Context, id string) (Dummy, error)
	Update(ctx context.Context, id string, in UpdateInput) (Dummy, error)
	Delete(ctx context.Context, id string) (Dummy, error)
	ListOffset(ctx context.Context, raw query.RawQuery) (query.OffsetPage[Dummy], error)
	ListCursor(ctx context.Context, raw query.RawQuery) (query.CursorPage[Dummy], error)
}
