// Package http provides http transport for dummies
package http

import (
	stdhttp "net/http"

	"dashkit/internal/core/query"
	"dashkit/internal/modkit/httpkit"
	"dashkit/internal/services/api/dummies/domain"
	svc "dashkit/internal/services/api/dummies/service"
)

// Register mounts dummy endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/", h.create)
	httpkit.Get(r, "/", h.listOffset)
	httpkit.Get(r, "/cursor", h.listCursor)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PutJSON(r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc svc.Service }

// OffsetPage documents the offset list envelope
type OffsetPage struct {
	StatusCode int              `json:"status_code" example:"200"`
	Status     string           `json:"status" example:"OK"`
	Message    string           `json:"message" example:"Dummies retrieved"`
	RequestID  string           `json:"request_id" example:"host/abc-000001"`
	Data       []domain.Dummy   `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

// CursorPage documents the cursor list envelope
type CursorPage struct {
	StatusCode int            `json:"status_code" example:"200"`
	Status     string         `json:"status" example:"OK"`
	Message    string         `json:"message" example:"Dummies retrieved"`
	RequestID  string         `json:"request_id" example:"host/abc-000001"`
	Data       []domain.Dummy `json:"data"`
	NextCursor *string        `json:"nextCursor" example:"0b6f1f7e-0a4c-4d59-9a53-3d1e2b1f6a10"`
}

// @Summary Create a dummy
// @Tags Dummy
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Dummy"
// @Success 201 {object} domain.Dummy
// @Failure 400 {object} phttp.Envelope
// @Failure 409 {object} phttp.Envelope
// @Router /dummy [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	d, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(d).WithMessage("Dummy created"), nil
}

// @Summary List dummies with offset pagination
// @Tags Dummy
// @Produce json
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "page size, at most 100" default(20)
// @Param searchTerm query string false "case insensitive substring"
// @Param searchFields query string false "comma separated subset of name,description"
// @Param sortField query string false "id, name, description, createdAt or updatedAt"
// @Param sortDirection query string false "asc or desc" Enums(asc, desc)
// @Param name query string false "name contains"
// @Param description query string false "description contains"
// @Success 200 {object} OffsetPage
// @Failure 400 {object} phttp.Envelope
// @Router /dummy [get]
func (h *handlers) listOffset(r *stdhttp.Request) (any, error) {
	page, err := h.svc.ListOffset(r.Context(), query.RawQueryFromValues(r.URL.Query()))
	if err != nil {
		return nil, err
	}
	return httpkit.OffsetList(page).WithMessage("Dummies retrieved"), nil
}

// @Summary List dummies with cursor pagination
// @Tags Dummy
// @Produce json
// @Param cursor query string false "id of the last dummy of the previous page"
// @Param limit query int false "page size, at most 100" default(20)
// @Param searchTerm query string false "case insensitive substring"
// @Param sortField query string false "id, name, description, createdAt or updatedAt"
// @Param sortDirection query string false "asc or desc" Enums(asc, desc)
// @Success 200 {object} CursorPage
// @Failure 400 {object} phttp.Envelope
// @Router /dummy/cursor [get]
func (h *handlers) listCursor(r *stdhttp.Request) (any, error) {
	page, err := h.svc.ListCursor(r.Context(), query.RawQueryFromValues(r.URL.Query()))
	if err != nil {
		return nil, err
	}
	return httpkit.CursorList(page).WithMessage("Dummies retrieved"), nil
}

// @Summary Get a dummy
// @Tags Dummy
// @Produce json
// @Param id path string true "Dummy ID"
// @Success 200 {object} domain.Dummy
// @Failure 404 {object} phttp.Envelope
// @Router /dummy/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	d, err := h.svc.Get(r.Context(), httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	return httpkit.OK(d).WithMessage("Dummy retrieved"), nil
}

// @Summary Update a dummy
// @Tags Dummy
// @Accept json
// @Produce json
// @Param id path string true "Dummy ID"
// @Param payload body domain.UpdateInput true "Fields to change"
// @Success 200 {object} domain.Dummy
// @Failure 400 {object} phttp.Envelope
// @Failure 404 {object} phttp.Envelope
// @Router /dummy/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	d, err := h.svc.Update(r.Context(), httpkit.Param(r, "id"), in)
	if err != nil {
		return nil, err
	}
	return httpkit.OK(d).WithMessage("Dummy updated"), nil
}

// @Summary Delete a dummy
// @Tags Dummy
// @Produce json
// @Param id path string true "Dummy ID"
// @Success 200 {object} domain.Dummy
// @Failure 404 {object} phttp.Envelope
// @Router /dummy/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	d, err := h.svc.Delete(r.Context(), httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	return httpkit.OK(d).WithMessage("Dummy deleted"), nil
}
