package http

import (
	"encoding/json"
	stdhttp "net/http"
	"time"

	perr "dashkit/internal/platform/errors"
	"dashkit/internal/platform/logger"
	pnet "dashkit/internal/platform/net"
)

// Envelope is the response body of every endpoint
type Envelope struct {
	StatusCode int         `json:"status_code"`
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	NextCursor *Cursor     `json:"nextCursor,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// Pagination describes an offset page
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Cursor is the continuation of a cursor page; a nil Next marshals as null
type Cursor struct{ Next *string }

// MarshalJSON writes the bare cursor string or null
func (c Cursor) MarshalJSON() ([]byte, error) { return json.Marshal(c.Next) }

// ErrorBody is the error half of the envelope
type ErrorBody struct {
	Code      perr.ErrorCode `json:"code"`
	Message   string         `json:"message"`
	Field     string         `json:"field,omitempty"`
	Path      string         `json:"path"`
	Timestamp string         `json:"timestamp"`
}

// now is a seam for tests
var now = time.Now

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Msg("write response")
	}
}

// Response is what return-style handlers produce
type Response struct {
	Status     int
	Message    string
	Body       any
	Pagination *Pagination
	NextCursor *Cursor
	Header     stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Message:    resp.Message,
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
		Pagination: resp.Pagination,
		NextCursor: resp.NextCursor,
	})
}

// RespondError maps a project error into an envelope and writes it.
// Server side failures are logged with the request id
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	wire := perr.WireFrom(err)
	if status >= stdhttp.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Message:    wire.Message,
		RequestID:  pnet.RequestID(r.Context()),
		Error: &ErrorBody{
			Code:      wire.Code,
			Message:   wire.Message,
			Field:     wire.Field,
			Path:      r.URL.Path,
			Timestamp: now().UTC().Format(time.RFC3339),
		},
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return Response{Body: err} }

// WithMessage sets the human readable message of the envelope
func (resp Response) WithMessage(msg string) Response {
	resp.Message = msg
	return resp
}
