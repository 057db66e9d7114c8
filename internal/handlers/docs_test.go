package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	_ "coinfolio/internal/docs"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

// Every /api/v1 route must appear in the served OpenAPI document with its method.
func TestSwaggerDocCoversRoutes(t *testing.T) {
	app := setupFlowApp(t)

	rec := doRequest(app.Router, "GET", "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc.json: %v", err)
	}

	for _, r := range app.Router.Routes() {
		if !strings.HasPrefix(r.Path, doc.BasePath+"/") {
			continue
		}
		path := pathParam.ReplaceAllString(strings.TrimPrefix(r.Path, doc.BasePath), "{$1}")
		ops, ok := doc.Paths[path]
		if !ok {
			t.Errorf("%s %s is not documented", r.Method, path)
			continue
		}
		if _, ok := ops[strings.ToLower(r.Method)]; !ok {
			t.Errorf("%s %s is missing from the documented operations", r.Method, path)
		}
	}
}
