package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, header, value string) (ctxID, respID string) {
	t.Helper()

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates a UUIDv7", func(t *testing.T) {
		ctxID, respID := serve(t, requestid.Middleware, requestid.Header, "")
		require.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, respID)
		parsed, err := uuid.Parse(ctxID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
	})

	t.Run("reuses valid ids", func(t *testing.T) {
		for _, id := range []string{"abc123", "req_1-A", strings.Repeat("x", 128)} {
			ctxID, respID := serve(t, requestid.Middleware, requestid.Header, id)
			assert.Equal(t, id, ctxID)
			assert.Equal(t, id, respID)
		}
	})

	t.Run("replaces invalid ids", func(t *testing.T) {
		for _, id := range []string{"a b", "x/y", "<script>", "ü", strings.Repeat("x", 129)} {
			ctxID, respID := serve(t, requestid.Middleware, requestid.Header, id)
			assert.NotEqual(t, id, ctxID)
			assert.Equal(t, ctxID, respID)
		}
	})

	t.Run("custom header and generator", func(t *testing.T) {
		mw := requestid.New(requestid.WithHeader("X-Correlation-ID"), requestid.WithGenerator(func() string { return "fixed" }))
		ctxID, respID := serve(t, mw, "X-Correlation-ID", "")
		assert.Equal(t, "fixed", ctxID)
		assert.Equal(t, "fixed", respID)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled
	assert.Empty(t, requestid.FromContext(nil))
	assert.Equal(t, "id-1", requestid.FromContext(requestid.WithContext(context.Background(), "id-1")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-42"), "validated")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)

	buf.Reset()
	log.InfoContext(context.Background(), "validated")
	assert.NotContains(t, buf.String(), "request_id")
}
