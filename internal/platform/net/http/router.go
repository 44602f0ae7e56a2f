// Package http is the transport layer: the router seam modules mount on,
// the response envelope, and the server lifecycle
package http

import "net/http"

// Handler is a plain handler func
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules see of the mux. Chi stays behind AdaptChi
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Delete(path string, h Handler)
	Handle(path string, h http.Handler)

	// Use adds middleware to everything registered afterwards
	Use(mw ...func(http.Handler) http.Handler)
	// Group shares middleware without a path prefix
	Group(fn func(Router))
	// Route nests fn under pattern
	Route(pattern string, fn func(Router))

	// Mux is the underlying http.Handler
	Mux() http.Handler
}
