package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/internal/logging"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/forms"
	"github.com/flexile/fieldlayout/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...HandlerOption) http.Handler {
	t.Helper()
	eng, err := fieldlayout.New()
	require.NoError(t, err)
	opts = append([]HandlerOption{WithLogger(logging.NewNop())}, opts...)
	return NewHandler(eng, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := do(t, newTestHandler(t), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	rr := do(t, newTestHandler(t), "GET", "/info", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "fieldlayout-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, "0.1.0", resp["api_version"])
}

func TestGetSpec(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, swagger.Paths.Find("/forms/{id}/layout"))

	rr := do(t, newTestHandler(t), "GET", "/openapi.json", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"openapi":"3.0.3"`)
}

func TestNewServer_LoadsSpecUpFront(t *testing.T) {
	eng, err := fieldlayout.New()
	require.NoError(t, err)

	server := newServer(eng, WithLogger(logging.NewNop()))
	require.NotNil(t, server.Swagger)
	assert.Equal(t, "0.1.0", server.Swagger.Info.Version)
}

func TestLoadSpec_Invalid(t *testing.T) {
	_, err := loadSpec([]byte("openapi: 3.0.3\ninfo:\n  title: broken\npaths: {}\n"))
	assert.Error(t, err, "missing info.version must fail validation")

	_, err = loadSpec([]byte("{not yaml"))
	assert.Error(t, err)
}

func TestGetSpec_Unavailable(t *testing.T) {
	server := &Server{Logger: logging.NewNop()}
	rr := httptest.NewRecorder()
	server.GetSpec(rr, httptest.NewRequest("GET", "/openapi.json", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestListForms(t *testing.T) {
	rr := do(t, newTestHandler(t), "GET", "/forms", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var ids []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ids))
	assert.Equal(t, []string{forms.BankAccountUSD, forms.MailingAddress}, ids)
}

func TestGetForm(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, "GET", "/forms/"+forms.MailingAddress, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var form domain.Form
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &form))
	assert.Len(t, form.Fields, 4)

	rr = do(t, h, "GET", "/forms/unknown", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "form not found")
}

func TestGetLayout(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, "GET", "/forms/"+forms.BankAccountUSD+"/layout", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var layout domain.Layout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &layout))
	assert.Equal(t, forms.BankAccountUSD, layout.FormID)
	assert.Contains(t, layout.Keys(), []string{"abartn", "accountNumber"})

	rr = do(t, h, "GET", "/forms/unknown/layout", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestValidateForm(t *testing.T) {
	h := newTestHandler(t)
	path := "/forms/" + forms.MailingAddress + "/validate"

	valid := `{"values":{"address":{"streetAddress":"1 Main St","city":"Austin","state":"TX","postCode":"78701"}}}`
	rr := do(t, h, "POST", path, valid)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"valid":true}`, rr.Body.String())

	rr = do(t, h, "POST", path, `{"values":{"address.postCode":"787"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Len(t, resp.Errors, 4)
	assert.Equal(t, "address.streetAddress", resp.Errors[0].Key)

	rr = do(t, h, "POST", path, `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, "POST", "/forms/unknown/validate", `{"values":{}}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGroupFields(t *testing.T) {
	h := newTestHandler(t)

	body := `{
		"fields": [{"key":"field1"},{"key":"abartn"},{"key":"field2"},{"key":"accountNumber"},{"key":"address.state"},{"key":"field3"},{"key":"address.postCode"}]
	}`
	rr := do(t, h, "POST", "/group", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var layout domain.Layout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &layout))
	assert.Equal(t, [][]string{
		{"field1"},
		{"abartn", "accountNumber"},
		{"field2"},
		{"address.state", "address.postCode"},
		{"field3"},
	}, layout.Keys())

	rr = do(t, h, "POST", "/group", `{"fields":[{"key":"a"},{"key":"b"},{"key":"c"}],"pairs":[["c","a"]]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &layout))
	assert.Equal(t, [][]string{{"a", "c"}, {"b"}}, layout.Keys())

	rr = do(t, h, "POST", "/group", `{"fields":[],"pairs":[["only-one"]]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, "POST", "/group", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	eng, err := fieldlayout.New(fieldlayout.WithMetrics(metrics))
	require.NoError(t, err)
	h := NewHandler(eng, WithLogger(logging.NewNop()), WithMetrics(reg))

	do(t, h, "GET", "/forms/"+forms.BankAccountUSD+"/layout", "")

	rr := do(t, h, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `fieldlayout_layouts_total{form="bank_account_usd"} 1`)

	rr = do(t, newTestHandler(t), "GET", "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	rr := do(t, newTestHandler(t), "OPTIONS", "/group", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
