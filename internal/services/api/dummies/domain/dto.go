// Package domain holds the dummy record, its DTOs and the listing declaration
package domain

import (
	"time"

	"dashkit/internal/core/query"

	"github.com/google/uuid"
)

// Dummy is the stored record
type Dummy struct {
	ID          uuid.UUID `json:"id" example:"0b6f1f7e-0a4c-4d59-9a53-3d1e2b1f6a10"`
	Name        string    `json:"name" example:"alpha"`
	Description *string   `json:"description" example:"the first dummy of the batch"`
	CreatedAt   time.Time `json:"createdAt" example:"2025-09-03T13:00:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2025-09-03T13:00:00Z"`
}

// CreateInput is the POST body; ID is optional and generated when absent
type CreateInput struct {
	ID          string  `json:"id,omitempty" validate:"omitempty,uuid" example:"0b6f1f7e-0a4c-4d59-9a53-3d1e2b1f6a10"`
	Name        string  `json:"name" validate:"required,notblank,min=3,max=255" example:"alpha"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=15,max=2000" example:"the first dummy of the batch"`
}

// UpdateInput is the PUT body; nil fields are left unchanged
type UpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,min=3,max=255" example:"beta"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=15,max=2000" example:"a longer description"`
}

// Empty reports whether the update changes nothing
func (u UpdateInput) Empty() bool { return u.Name == nil && u.Description == nil }

// Listing field names
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

// Resource declares what dummy listings may sort, search and filter on
var Resource = query.MustResource("dummy", FieldID,
	query.Order{{Field: FieldCreatedAt, Direction: query.Desc}},
	query.Field{Name: FieldID, Kind: query.KindUUID, Sortable: true},
	query.Field{Name: FieldName, Kind: query.KindString, Sortable: true, Searchable: true, Filterable: true},
	query.Field{Name: FieldDescription, Kind: query.KindString, Sortable: true, Searchable: true, Filterable: true},
	query.Field{Name: FieldCreatedAt, Kind: query.KindTime, Sortable: true},
	query.Field{Name: FieldUpdatedAt, Kind: query.KindTime, Sortable: true},
)

// Value exposes d's listing fields; a nil description reads as NULL
func (d Dummy) Value(field string) any {
	switch field {
	case FieldID:
		return d.ID.String()
	case FieldName:
		return d.Name
	case FieldDescription:
		if d.Description == nil {
			return nil
		}
		return *d.Description
	case FieldCreatedAt:
		return d.CreatedAt
	case FieldUpdatedAt:
		return d.UpdatedAt
	}
	return nil
}

// Key is the cursor id of d
func (d Dummy) Key() string { return d.ID.String() }
