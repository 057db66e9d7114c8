package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"coinfolio/internal/logger"
	"coinfolio/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) map[string]interface{} {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
	return errObj
}

func TestResolveTimestamp(t *testing.T) {
	t.Run("explicit_timestamp_wins", func(t *testing.T) {
		ts, err := resolveTimestamp(42, "2024-01-01")
		if err != nil || ts != 42 {
			t.Fatalf("expected 42, got %d (%v)", ts, err)
		}
	})

	t.Run("date_only", func(t *testing.T) {
		ts, err := resolveTimestamp(0, "2024-01-02")
		if err != nil {
			t.Fatal(err)
		}
		if want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli(); ts != want {
			t.Errorf("expected %d, got %d", want, ts)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		ts, err := resolveTimestamp(0, "2024-01-02T03:04:05Z")
		if err != nil {
			t.Fatal(err)
		}
		if want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).UnixMilli(); ts != want {
			t.Errorf("expected %d, got %d", want, ts)
		}
	})

	t.Run("bad_date", func(t *testing.T) {
		if _, err := resolveTimestamp(0, "yesterday"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("defaults_to_now", func(t *testing.T) {
		before := time.Now().UnixMilli()
		ts, err := resolveTimestamp(0, "")
		if err != nil || ts < before {
			t.Fatalf("expected current time, got %d (%v)", ts, err)
		}
	})
}
