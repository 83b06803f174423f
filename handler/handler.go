package handler

import (
	"errors"
	"net/http"
)

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a decoded request of type R.
type HandlerFunc[R any] func(r *http.Request, req R) Response

// Bind decodes r into v. Returning ErrBinderNotApplicable lets the next
// binder try.
type Bind[R any] func(r *http.Request, v *R) error

// ErrorHandler turns binding and rendering errors into a response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Decorator wraps a HandlerFunc. The first decorator given to
// WithDecorators is the outermost.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

type wrapConfig[R any] struct {
	binders      []Bind[R]
	errorHandler ErrorHandler
	decorators   []Decorator[R]
}

type WrapOption[R any] func(*wrapConfig[R])

// WithBinders appends binders applied in order.
func WithBinders[R any](binders ...Bind[R]) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.binders = append(c.binders, binders...)
	}
}

func WithErrorHandler[R any](h ErrorHandler) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func WithDecorators[R any](decorators ...Decorator[R]) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// Wrap converts a typed handler into an http.HandlerFunc.
//
//	r.Post("/validate", handler.Wrap(svc.validate,
//		handler.WithBinders(svc.bindSchema),
//		handler.WithErrorHandler[ValidateRequest](handler.NewErrorHandler(log)),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{errorHandler: NewErrorHandler(nil)}
	for _, opt := range opts {
		opt(cfg)
	}

	final := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		final = cfg.decorators[i](final)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				if errors.Is(err, ErrBinderNotApplicable) {
					continue
				}
				cfg.errorHandler(w, r, err)
				return
			}
		}

		resp := final(r, req)
		if resp == nil {
			cfg.errorHandler(w, r, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(w, r, err)
		}
	}
}
