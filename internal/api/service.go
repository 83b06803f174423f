package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/rulekit/binder"
	"github.com/dmitrymomot/rulekit/handler"
	"github.com/dmitrymomot/rulekit/pkg/clientip"
	"github.com/dmitrymomot/rulekit/pkg/field"
	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/message"
	"github.com/dmitrymomot/rulekit/pkg/ratelimiter"
	"github.com/dmitrymomot/rulekit/pkg/requestid"
	"github.com/dmitrymomot/rulekit/pkg/rules"
	"github.com/dmitrymomot/rulekit/pkg/upload"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Service validates forms described by JSON schemas.
type Service struct {
	lib           *validator.Library
	catalog       *message.Catalog
	formatter     *message.Formatter
	translator    *i18n.Translator
	log           *slog.Logger
	maxUploadSize int64
	maxBodySize   int64
	valueEcho     bool
	limiter       *ratelimiter.Limiter
	trustProxy    bool
	errorHandler  handler.ErrorHandler
}

// New returns a Service using the built-in validators plus the control
// specific ones of package field.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		catalog:       message.DefaultCatalog(),
		log:           logger.Discard(),
		maxUploadSize: DefaultMaxUploadSize,
		maxBodySize:   DefaultMaxBodySize,
		valueEcho:     true,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.lib = validator.Default()
	if err := field.Register(s.lib); err != nil {
		return nil, fmt.Errorf("registering control validators: %w", err)
	}
	s.formatter = message.NewFormatter(message.WithCatalog(s.catalog), message.WithLogger(s.log))
	s.errorHandler = handler.NewErrorHandler(s.log)
	return s, nil
}

// Routes returns the HTTP API:
//
//	POST /validate  validate a form schema (JSON or multipart with files)
//	GET  /catalog   list message templates in the negotiated language
//	GET  /health    liveness and readiness
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(s.trustProxy))
	r.Use(i18n.Middleware(s.langExtractor))

	var validate chi.Router = r
	if s.limiter != nil {
		validate = r.With(ratelimiter.Middleware(s.limiter, clientKey, s.rateLimited))
	}
	validate.Post("/validate", handler.Wrap(s.validate,
		handler.WithBinders(s.bindValidate),
		handler.WithErrorHandler[ValidateRequest](s.errorHandler),
	))
	r.Get("/catalog", handler.Wrap(s.listCatalog,
		handler.WithBinders(bindCatalog),
		handler.WithErrorHandler[CatalogRequest](s.errorHandler),
	))
	r.Get("/health", httpserver.HealthCheckHandler(s.log, time.Second, s.checks()...))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(w, r, handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(w, r, handler.ErrMethodNotAllowed)
	})
	return r
}

func (s *Service) langExtractor(r *http.Request) string {
	if s.translator == nil {
		return i18n.DefaultLangExtractor()(r)
	}
	return i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(s.translator.SupportedLanguages()...))(r)
}

func clientKey(r *http.Request) string {
	return clientip.FromContext(r.Context())
}

func (s *Service) rateLimited(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result, err error) {
	if err != nil {
		s.errorHandler(w, r, handler.ErrServiceUnavailable.Wrap("", err))
		return
	}
	s.errorHandler(w, r, handler.ErrTooManyRequests)
}

func (s *Service) checks() []httpserver.Check {
	checks := []httpserver.Check{{
		Name: "catalog",
		Func: func(context.Context) error {
			if s.catalog.Len() == 0 {
				return errors.New("message catalog is empty")
			}
			return nil
		},
	}}
	if s.translator != nil {
		checks = append(checks, httpserver.Check{
			Name: "translations",
			Func: func(context.Context) error {
				if len(s.translator.SupportedLanguages()) == 0 {
					return errors.New("no translations loaded")
				}
				return nil
			},
		})
	}
	return checks
}

// locale returns the translator for lang, or for the request language when
// lang is empty. It is nil without a configured translator.
func (s *Service) locale(ctx context.Context, lang string) (validator.Translator, string) {
	if s.translator == nil {
		return nil, i18n.GetLocale(ctx)
	}
	loc := s.translator.LocaleFromContext(ctx)
	if lang != "" {
		loc = s.translator.Locale(lang)
	}
	return loc, loc.Lang()
}

func (s *Service) bindValidate(r *http.Request, req *ValidateRequest) error {
	r.Body = http.MaxBytesReader(nil, r.Body, s.maxBodySize)

	var err error
	switch binder.MediaType(r) {
	case "multipart/form-data":
		if err = binder.MultipartJSON("schema")(r, req); err == nil {
			req.files, err = upload.AllFromRequest(r, s.maxUploadSize)
		}
	default:
		err = binder.JSON()(r, req)
	}
	return bindError(err)
}

func bindCatalog(r *http.Request, req *CatalogRequest) error {
	return bindError(binder.Query()(r, req))
}

func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &tooLarge):
		return handler.ErrRequestEntityTooLarge.Wrap(
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), err)
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return handler.ErrUnsupportedMediaType.Wrap("expected application/json or multipart/form-data", err)
	default:
		return handler.ErrBadRequest.Wrap(err.Error(), err)
	}
}

func (s *Service) validate(r *http.Request, req ValidateRequest) handler.Response {
	ctx := r.Context()
	start := time.Now()

	tr, lang := s.locale(ctx, req.Language)
	built, err := buildForm(&req, tr, s.lib,
		rules.WithLibrary(s.lib),
		rules.WithFormatter(s.formatter),
		rules.WithLogger(s.log),
		rules.WithValueEcho(s.valueEcho),
	)
	if err != nil {
		return handler.JSONError(handler.ErrBadRequest.Wrap(err.Error(), err))
	}

	err = built.form.Validate(ctx)
	valid := err == nil
	s.log.InfoContext(ctx, "form validated",
		slog.String("form", req.Form),
		slog.Bool("valid", valid),
		logger.Locale(lang),
		logger.Duration(time.Since(start)),
	)

	values := built.values()
	switch {
	case valid:
		return handler.JSON(ValidateResult{Valid: true, Language: lang, Values: values})
	case rules.IsValidationError(err):
		return handler.JSONError(err, handler.WithJSONMeta(map[string]any{
			"language": lang,
			"values":   values,
		}))
	default:
		// A rule that cannot run on its control is a schema mistake.
		return handler.JSONError(handler.ErrUnprocessableEntity.Wrap(err.Error(), err))
	}
}

func (s *Service) listCatalog(r *http.Request, req CatalogRequest) handler.Response {
	tr, lang := s.locale(r.Context(), req.Lang)

	ids := s.catalog.IDs()
	if len(req.IDs) > 0 {
		ids = make([]validator.ID, 0, len(req.IDs))
		for _, id := range req.IDs {
			if _, ok := s.catalog.Lookup(validator.ID(id)); !ok {
				return handler.JSONError(handler.ErrNotFound.Wrap(fmt.Sprintf("no message for validator %q", id), nil))
			}
			ids = append(ids, validator.ID(id))
		}
	}

	out := CatalogResult{Language: lang, Messages: make(map[string]string, len(ids))}
	for _, id := range ids {
		tmpl, _ := s.catalog.Lookup(id)
		if tr != nil {
			tmpl = tr.Translate(tmpl)
		}
		out.Messages[string(id)] = tmpl
	}
	return handler.JSON(out)
}
