package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"dmappex-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.Init(telemetry.Options{Output: &buf})
	defer telemetry.Init(telemetry.Options{})

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.POST("/api/calculate-matches", func(c *gin.Context) {
		c.Set(BudgetKey, "professional")
		c.Set(UseCaseKey, "training")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/calculate-matches", nil)
	req.Header.Set("X-Request-Id", "req-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "method", "path", "status", "duration_ms", "client_ip"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["request_id"] != "req-1" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["budget"] != "professional" {
		t.Fatalf("unexpected budget: %v", payload["budget"])
	}
	if payload["use_case"] != "training" {
		t.Fatalf("unexpected use_case: %v", payload["use_case"])
	}
}

func TestLoggingSkipsOptions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.Init(telemetry.Options{Output: &buf})
	defer telemetry.Init(telemetry.Options{})

	router := gin.New()
	router.Use(Logging(), CORS([]string{"*"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/calculate-matches", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %q", buf.String())
	}
}
