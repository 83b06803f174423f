package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/handler"
	"github.com/dmitrymomot/rulekit/internal/api"
	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/message"
	"github.com/dmitrymomot/rulekit/pkg/ratelimiter"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {},
		"cs": {
			"This field is required.": "Toto pole je povinné.",
			"Please enter at least %d characters.": map[string]any{
				"one":   "Zadejte alespoň %d znak.",
				"few":   "Zadejte alespoň %d znaky.",
				"other": "Zadejte alespoň %d znaků.",
			},
		},
	}})
	require.NoError(t, err)
	return tr
}

func newServer(t *testing.T, opts ...api.Option) http.Handler {
	t.Helper()
	opts = append([]api.Option{api.WithTranslator(newTranslator(t))}, opts...)
	svc, err := api.New(opts...)
	require.NoError(t, err)
	return svc.Routes()
}

func postJSON(h http.Handler, body string, header ...string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		r.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

const signup = `{
	"form": "signup",
	"fields": [
		{"name": "email", "label": "Email", "value": "%EMAIL%",
		 "rules": [{"validator": "filled"}, {"validator": "email"}]},
		{"name": "nick", "value": "%NICK%",
		 "rules": [{"validator": "minLength", "arg": 3}]},
		{"name": "password", "value": "secret"},
		{"name": "confirm", "value": "%CONFIRM%",
		 "rules": [{"validator": "equal", "arg": {"ref": "password"}, "message": "Passwords do not match."}]},
		{"name": "age", "value": 30,
		 "rules": [{"validator": "range", "arg": {"min": 18, "max": 120}}]},
		{"name": "plan", "type": "select", "items": ["free", "pro"], "value": "pro",
		 "rules": [{"validator": "selectValid"}]}
	]
}`

func signupBody(email, nick, confirm string) string {
	return strings.NewReplacer("%EMAIL%", email, "%NICK%", nick, "%CONFIRM%", confirm).Replace(signup)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	t.Run("valid form echoes values", func(t *testing.T) {
		w := postJSON(h, signupBody("jan@example.com", "jan", "secret"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Data api.ValidateResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Data.Valid)
		assert.Equal(t, "en", body.Data.Language)
		assert.Equal(t, "jan@example.com", body.Data.Values["email"])
		assert.Equal(t, "pro", body.Data.Values["plan"])
	})

	t.Run("failures are reported per field", func(t *testing.T) {
		w := postJSON(h, signupBody("", "ja", "other"))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		body := decode(t, w)
		require.NotNil(t, body.Error)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Equal(t, map[string][]string{
			"email":   {"This field is required."},
			"nick":    {"Please enter at least 3 characters."},
			"confirm": {"Passwords do not match."},
		}, body.Error.Details)
		assert.Equal(t, "en", body.Meta["language"])
		assert.Contains(t, body.Meta["values"], "nick")
	})

	t.Run("negotiated language", func(t *testing.T) {
		w := postJSON(h, signupBody("", "ja", "secret"), "Accept-Language", "cs-CZ, en;q=0.5")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "cs", w.Header().Get("Content-Language"))

		body := decode(t, w)
		assert.Equal(t, []string{"Toto pole je povinné."}, body.Error.Details["email"])
		assert.Equal(t, []string{"Zadejte alespoň 3 znaky."}, body.Error.Details["nick"])
	})

	t.Run("language field overrides negotiation", func(t *testing.T) {
		body := strings.Replace(signupBody("", "jan", "secret"), `"form": "signup",`, `"form": "signup", "language": "cs",`, 1)
		w := postJSON(h, body, "Accept-Language", "en")
		assert.Equal(t, []string{"Toto pole je povinné."}, decode(t, w).Error.Details["email"])
	})
}

func TestValidate_Groups(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	w := postJSON(h, `{
		"form": "address",
		"submitted_by": "save",
		"fields": [
			{"name": "address", "type": "group",
			 "rules": [{"validator": "valid", "message": "Check the address."}],
			 "fields": [
				{"name": "street", "value": "", "rules": [{"validator": "filled"}]},
				{"name": "zip", "value": "11000", "rules": [{"validator": "pattern", "arg": "[0-9]{5}"}]}
			 ]},
			{"name": "save", "type": "submit", "rules": [{"validator": "submitted"}]}
		]
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, map[string][]string{
		"address": {"Check the address."},
		"street":  {"This field is required."},
	}, body.Error.Details)

	values := body.Meta["values"].(map[string]any)
	assert.Equal(t, map[string]any{"street": "", "zip": "11000"}, values["address"])
	assert.Equal(t, true, values["save"])
}

func TestValidate_SchemaErrors(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	cases := []struct {
		name string
		body string
		code int
		key  string
	}{
		{"malformed json", `{"form":`, http.StatusBadRequest, "bad_request"},
		{"unknown property", `{"form":"f","extra":1}`, http.StatusBadRequest, "bad_request"},
		{"unknown validator", `{"fields":[{"name":"a","rules":[{"validator":"nope"}]}]}`, http.StatusBadRequest, "bad_request"},
		{"unknown type", `{"fields":[{"name":"a","type":"slider"}]}`, http.StatusBadRequest, "bad_request"},
		{"duplicate control", `{"fields":[{"name":"a"},{"name":"a"}]}`, http.StatusBadRequest, "bad_request"},
		{"unknown reference", `{"fields":[{"name":"a","rules":[{"validator":"equal","arg":{"ref":"b"}}]}]}`, http.StatusBadRequest, "bad_request"},
		{"bad range object", `{"fields":[{"name":"a","rules":[{"validator":"range","arg":{"low":1}}]}]}`, http.StatusBadRequest, "bad_request"},
		{"rule unsupported by control", `{"fields":[{"name":"a","value":"x","rules":[{"validator":"submitted"}]}]}`, http.StatusUnprocessableEntity, "unprocessable_entity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(h, tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
			body := decode(t, w)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.key, body.Error.Code)
		})
	}

	t.Run("unsupported media type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader("a=b"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("body limit", func(t *testing.T) {
		small := newServer(t, api.WithMaxBodySize(16))
		w := postJSON(small, signupBody("jan@example.com", "jan", "secret"))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestValidate_Multipart(t *testing.T) {
	t.Parallel()
	h := newServer(t, api.WithMaxUploadSize(1024))

	schema := `{
		"form": "profile",
		"fields": [
			{"name": "avatar", "type": "upload",
			 "rules": [{"validator": "filled"}, {"validator": "uploadValid"}, {"validator": "image"}]},
			{"name": "docs", "type": "multiupload",
			 "rules": [{"validator": "fileSize", "arg": 4}]}
		]
	}`

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("schema", schema))
	fw, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBytes(t))
	require.NoError(t, err)
	fw, err = mw.CreateFormFile("docs", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("too long for four bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/validate", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, map[string][]string{
		"docs": {"The size of the uploaded file can be up to 4 bytes."},
	}, body.Error.Details)

	values := body.Meta["values"].(map[string]any)
	avatar := values["avatar"].(map[string]any)
	assert.Equal(t, "me.png", avatar["name"])
	assert.Equal(t, "image/png", avatar["content_type"])
	assert.Equal(t, true, avatar["ok"])
	assert.Len(t, values["docs"], 1)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog := message.DefaultCatalog().With(map[validator.ID]string{validator.Email: "Bad email."})
	h := newServer(t, api.WithCatalog(catalog))

	get := func(target string, header ...string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		for i := 0; i+1 < len(header); i += 2 {
			r.Header.Set(header[i], header[i+1])
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	type catalogBody struct {
		Data api.CatalogResult `json:"data"`
	}

	t.Run("full catalog", func(t *testing.T) {
		w := get("/catalog")
		require.Equal(t, http.StatusOK, w.Code)
		var body catalogBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Bad email.", body.Data.Messages["email"])
		assert.Len(t, body.Data.Messages, catalog.Len())
	})

	t.Run("selected ids translated", func(t *testing.T) {
		w := get("/catalog?id=filled", "Accept-Language", "cs")
		require.Equal(t, http.StatusOK, w.Code)
		var body catalogBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, api.CatalogResult{
			Language: "cs",
			Messages: map[string]string{"filled": "Toto pole je povinné."},
		}, body.Data)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := get("/catalog?id=nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoutes(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode(t, w).Error.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/validate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestValidate_Filters(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	w := postJSON(h, `{
		"form": "contact",
		"fields": [
			{"name": "email", "value": "  JAN@Example.com ", "filters": ["trim", "lower"],
			 "rules": [{"validator": "email"}]},
			{"name": "phone", "value": "+420 601 234 567", "filters": ["digits"],
			 "rules": [{"validator": "length", "arg": 12}]},
			{"name": "qty", "value": " 3 ", "filters": ["int"],
			 "rules": [{"validator": "integer"}, {"validator": "range", "arg": [1, 5]}]}
		]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data api.ValidateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{
		"email": "jan@example.com",
		"phone": "420601234567",
		"qty":   float64(3),
	}, body.Data.Values)

	w = postJSON(h, `{"fields":[{"name":"a","filters":["shout"]}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error.Message, "unknown filter")
}

func TestValidate_NumericValues(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	cases := []struct {
		name    string
		field   string
		want    int
		details []string
	}{
		{"integer accepts a number", `{"name":"qty","value":42,"rules":[{"validator":"integer"}]}`, http.StatusOK, nil},
		{"integer accepts a negative number", `{"name":"qty","value":-7,"rules":[{"validator":"integer"}]}`, http.StatusOK, nil},
		{"min passes", `{"name":"qty","value":10,"rules":[{"validator":"min","arg":5}]}`, http.StatusOK, nil},
		{"max fails", `{"name":"qty","value":10,"rules":[{"validator":"max","arg":5}]}`, http.StatusUnprocessableEntity,
			[]string{"Please enter a value less than or equal to 5."}},
		{"range passes", `{"name":"qty","value":3,"rules":[{"validator":"integer"},{"validator":"range","arg":[1,5]}]}`, http.StatusOK, nil},
		{"range fails", `{"name":"qty","value":30,"rules":[{"validator":"range","arg":{"min":1,"max":5}}]}`, http.StatusUnprocessableEntity,
			[]string{"Please enter a value between 1 and 5."}},
		{"fraction is not an integer", `{"name":"qty","value":12.5,"rules":[{"validator":"integer"}]}`, http.StatusUnprocessableEntity,
			[]string{"Please enter a valid integer."}},
		{"float accepts a fraction", `{"name":"qty","value":12.5,"rules":[{"validator":"float"}]}`, http.StatusOK, nil},
		{"numeric multiselect", `{"name":"ids","type":"multiselect","items":[1,2,3],"value":[1,3],"rules":[{"validator":"selectValid"}]}`, http.StatusOK, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(h, `{"fields":[`+tc.field+`]}`)
			require.Equal(t, tc.want, w.Code, w.Body.String())
			if tc.details != nil {
				body := decode(t, w)
				assert.Equal(t, tc.details, body.Error.Details["qty"])
			}
		})
	}

	t.Run("failed integer keeps the value", func(t *testing.T) {
		w := postJSON(h, `{"fields":[{"name":"qty","value":12.5,"rules":[{"validator":"integer"}]}]}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		values, ok := decode(t, w).Meta["values"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 12.5, values["qty"])
	})
}

func TestValidate_RateLimit(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0))
	t.Cleanup(store.Close)
	limiter, err := ratelimiter.New(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)
	h := newServer(t, api.WithRateLimiter(limiter), api.WithTrustProxy(true))

	body := signupBody("jan@example.com", "jan", "secret")
	assert.Equal(t, http.StatusOK, postJSON(h, body, "X-Real-IP", "198.51.100.1").Code)

	w := postJSON(h, body, "X-Real-IP", "198.51.100.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "too_many_requests", decode(t, w).Error.Code)

	assert.Equal(t, http.StatusOK, postJSON(h, body, "X-Real-IP", "198.51.100.2").Code)

	r := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	r.Header.Set("X-Real-IP", "198.51.100.1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "only validation is throttled")
}
