package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/handler"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/rules"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type greetRequest struct {
	Name string `json:"name"`
}

func bindJSON(r *http.Request, v *greetRequest) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return handler.ErrBinderNotApplicable
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return handler.ErrBadRequest.Wrap("malformed JSON", err)
	}
	return nil
}

func bindQuery(r *http.Request, v *greetRequest) error {
	if name := r.URL.Query().Get("name"); name != "" {
		v.Name = name
	}
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	greet := func(_ *http.Request, req greetRequest) handler.Response {
		if req.Name == "" {
			return handler.JSONError(rules.ValidationErrors{{Field: "name", Validator: validator.Filled, Message: "This field is required."}})
		}
		return handler.JSON(map[string]string{"greeting": "Hello, " + req.Name}, handler.WithJSONMeta(map[string]any{"v": 1}))
	}
	h := handler.Wrap(greet, handler.WithBinders(bindJSON, bindQuery))

	t.Run("json binder", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jan"}`))
		r.Header.Set("Content-Type", "application/json")
		h(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		body := decode(t, w)
		assert.Equal(t, map[string]any{"greeting": "Hello, Jan"}, body.Data)
		assert.Equal(t, map[string]any{"v": float64(1)}, body.Meta)
	})

	t.Run("inapplicable binder is skipped", func(t *testing.T) {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/?name=Eva", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("binder error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		r.Header.Set("Content-Type", "application/json")
		h(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		require.NotNil(t, body.Error)
		assert.Equal(t, "bad_request", body.Error.Code)
		assert.Equal(t, "malformed JSON", body.Error.Message)
	})

	t.Run("validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decode(t, w)
		require.NotNil(t, body.Error)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Equal(t, map[string][]string{"name": {"This field is required."}}, body.Error.Details)
	})
}

func TestWrap_NilResponseAndDecorators(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) handler.Decorator[greetRequest] {
		return func(next handler.HandlerFunc[greetRequest]) handler.HandlerFunc[greetRequest] {
			return func(r *http.Request, req greetRequest) handler.Response {
				order = append(order, name)
				return next(r, req)
			}
		}
	}

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
	h := handler.Wrap(
		func(*http.Request, greetRequest) handler.Response { return nil },
		handler.WithDecorators(trace("outer"), trace("inner")),
		handler.WithErrorHandler[greetRequest](handler.NewErrorHandler(log)),
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "internal_server_error", body.Error.Code)
	assert.NotContains(t, w.Body.String(), "nil response", "internal messages are not exposed")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"path":"/x"`)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := handler.ErrRequestEntityTooLarge.Wrap("upload too large", cause)
	assert.ErrorIs(t, err, handler.ErrRequestEntityTooLarge)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, handler.ErrBadRequest)
	assert.Equal(t, "request_entity_too_large: boom", err.Error())

	w := httptest.NewRecorder()
	require.NoError(t, handler.JSON(err).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "upload too large", decode(t, w).Error.Message)

	custom := handler.NewHTTPError(http.StatusConflict, "conflict")
	assert.Equal(t, "conflict", custom.Error())
}
