package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/martijn/taskman/internal/core/service"
)

func TestDashboardStats(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedTestData(t)

	w := env.makeRequest(t, http.MethodGet, "/api/dashboard-stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}

	var stats service.DashboardStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}

	if stats.TotalUsers != 3 {
		t.Errorf("expected 3 users, got %d", stats.TotalUsers)
	}
	if stats.TotalTasks != 12 {
		t.Errorf("expected 12 tasks, got %d", stats.TotalTasks)
	}
	if stats.PendingTasks != 6 {
		t.Errorf("expected 6 pending tasks, got %d", stats.PendingTasks)
	}
	if stats.InProgressTasks != 3 {
		t.Errorf("expected 3 in-progress tasks, got %d", stats.InProgressTasks)
	}
	if stats.CompletedTasks != 3 {
		t.Errorf("expected 3 completed tasks, got %d", stats.CompletedTasks)
	}
}

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.makeRequest(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected status healthy, got %q", body["status"])
	}
	if body["database"] != "connected" {
		t.Errorf("expected database connected, got %q", body["database"])
	}
	if body["timestamp"] == "" {
		t.Error("expected a timestamp")
	}
}

func TestHealthUnavailable(t *testing.T) {
	env := setupTestEnv(t)

	// A closed database fails the ping
	env.db.Close()

	w := env.makeRequest(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d\nBody: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["status"] != "unhealthy" {
		t.Errorf("expected status unhealthy, got %q", body["status"])
	}
	if body["database"] != "disconnected" {
		t.Errorf("expected database disconnected, got %q", body["database"])
	}
}
