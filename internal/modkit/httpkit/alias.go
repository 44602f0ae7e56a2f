// Package httpkit provides handler and routing helpers over the platform http package.
// Modules use these so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	"dashkit/internal/core/query"
	phttp "dashkit/internal/platform/net/http"
)

type (
	// Response is the return-style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// OffsetList renders an offset page as data plus pagination
func OffsetList[T any](p query.OffsetPage[T]) Response {
	pg := phttp.Pagination(p.Pagination)
	return Response{Status: http.StatusOK, Body: p.Data, Pagination: &pg}
}

// CursorList renders a cursor page as data plus nextCursor, which is null on the last page
func CursorList[T any](p query.CursorPage[T]) Response {
	return Response{Status: http.StatusOK, Body: p.Data, NextCursor: &phttp.Cursor{Next: p.NextCursor}}
}
