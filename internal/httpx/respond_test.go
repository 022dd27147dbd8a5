package httpx

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"title": "demo"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "demo", body["data"].(map[string]any)["title"])
	assert.NotContains(t, body, "results")
	assert.NotContains(t, body, "message")
}

func TestList(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, 2, []string{"a", "b"})

	body := decode(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["results"])
	assert.Len(t, body["data"], 2)
}

func TestListZeroResultsKept(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, 0, []string{})

	body := decode(t, rec)
	// results must be present even when zero
	assert.Contains(t, body, "results")
	assert.Equal(t, float64(0), body["results"])
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, 404, "Project not found")

	assert.Equal(t, 404, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Project not found", body["message"])
	assert.NotContains(t, body, "data")
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, []string{"/api/health", "/api/projects"})

	assert.Equal(t, 404, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Route not found", body["message"])
	routes := body["availableRoutes"].([]any)
	require.Len(t, routes, 2)
	assert.Equal(t, "/api/health", routes[0])
}

func TestFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	FieldErrors(rec, []FieldError{{Field: "message", Message: "Message is required"}})

	assert.Equal(t, 400, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "message", errs[0].(map[string]any)["field"])
}
