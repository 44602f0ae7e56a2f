package http

import (
	"net/http"

	"dashkit/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T body, then calls fn.
// fn may return a Response to control status, message or pagination
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) http.HandlerFunc {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return lift(fn(r, in))
	})
}

// NoBody calls fn without reading a request body
func NoBody(fn func(*http.Request) (any, error)) http.HandlerFunc {
	return Handle(func(r *http.Request) Response {
		return lift(fn(r))
	})
}

func lift(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
