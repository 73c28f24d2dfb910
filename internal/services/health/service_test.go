package health

import (
	"testing"
	"time"
)

func TestStatusHealthyWithParseableTimestamp(t *testing.T) {
	fixed := time.Date(2026, time.October, 15, 9, 30, 0, 123000000, time.UTC)
	got := NewService(func() time.Time { return fixed }).Status()

	if got.Status != "healthy" {
		t.Fatalf("expected healthy, got %q", got.Status)
	}
	if got.Service != "3AI-MCP Backend" {
		t.Fatalf("unexpected service: %q", got.Service)
	}
	parsed, err := time.Parse(time.RFC3339Nano, got.Timestamp)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	if !parsed.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, parsed)
	}
}

func TestStatusDefaultClock(t *testing.T) {
	before := time.Now().Add(-time.Second)
	got := NewService(nil).Status()
	parsed, err := time.Parse(time.RFC3339Nano, got.Timestamp)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	if parsed.Before(before) {
		t.Fatalf("timestamp %v is stale", parsed)
	}
}
