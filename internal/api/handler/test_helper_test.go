package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskman/internal/api/dto"
	"github.com/martijn/taskman/internal/core/service"
	"github.com/martijn/taskman/internal/infrastructure/sqlite"
)

// testEnv holds all test dependencies
type testEnv struct {
	db     *sqlite.DB
	router *gin.Engine
}

// setupTestEnv creates a test environment with an in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)

	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, userRepo)

	userHandler := NewUserHandler(userService, taskService)
	taskHandler := NewTaskHandler(taskService)
	statsHandler := NewStatsHandler(taskService, db)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	{
		api.GET("/users", userHandler.ListUsers)
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users/:id", userHandler.GetUser)
		api.PUT("/users/:id", userHandler.UpdateUser)
		api.DELETE("/users/:id", userHandler.DeleteUser)
		api.GET("/users/:id/tasks", userHandler.ListUserTasks)

		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)

		api.GET("/dashboard-stats", statsHandler.DashboardStats)
	}
	router.GET("/health", statsHandler.Health)

	return &testEnv{
		db:     db,
		router: router,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// seedTestData populates the database with three users and twelve tasks
// covering every status and priority.
func (env *testEnv) seedTestData(t *testing.T) {
	t.Helper()

	// Base time: Nov 1, 2025
	baseTime := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

	users := []struct {
		username string
		email    string
		isActive bool
	}{
		{"alice", "alice@example.com", true},
		{"bob", "bob@example.com", true},
		{"carol", "carol@example.com", false},
	}

	for i, u := range users {
		createdAt := baseTime.Add(time.Duration(i) * time.Hour)
		_, err := env.db.Exec(`
			INSERT INTO users (username, email, password_hash, is_active, created_at, updated_at)
			VALUES (?, ?, 'x', ?, ?, ?)
		`, u.username, u.email, u.isActive, createdAt.Format(time.RFC3339), createdAt.Format(time.RFC3339))
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", u.username, err)
		}
	}

	// created_at is staggered so the newest task is the last one inserted
	tasks := []struct {
		title    string
		userID   int64
		status   string
		priority string
	}{
		{"task-01", 1, "pending", "high"},
		{"task-02", 1, "in_progress", "medium"},
		{"task-03", 1, "completed", "low"},
		{"task-04", 2, "pending", "medium"},
		{"task-05", 2, "pending", "low"},
		{"task-06", 2, "in_progress", "high"},
		{"task-07", 3, "completed", "high"},
		{"task-08", 3, "pending", "medium"},
		{"task-09", 1, "pending", "high"},
		{"task-10", 2, "completed", "medium"},
		{"task-11", 3, "in_progress", "low"},
		{"task-12", 1, "pending", "low"},
	}

	for i, task := range tasks {
		createdAt := baseTime.Add(time.Duration(i) * time.Hour)
		var completedAt interface{}
		if task.status == "completed" {
			completedAt = createdAt.Add(30 * time.Minute).Format(time.RFC3339)
		}
		_, err := env.db.Exec(`
			INSERT INTO tasks (title, description, status, priority, user_id, completed_at, created_at, updated_at)
			VALUES (?, '', ?, ?, ?, ?, ?, ?)
		`, task.title, task.status, task.priority, task.userID, completedAt,
			createdAt.Format(time.RFC3339), createdAt.Format(time.RFC3339))
		if err != nil {
			t.Fatalf("failed to seed task %s: %v", task.title, err)
		}
	}
}

// makeRequest performs a request with an optional JSON body and returns the
// response
func (env *testEnv) makeRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func parseUserResponse(t *testing.T, w *httptest.ResponseRecorder) dto.UserResponse {
	t.Helper()

	var resp dto.UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseUserListResponse(t *testing.T, w *httptest.ResponseRecorder) dto.UserListResponse {
	t.Helper()

	var resp dto.UserListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseTaskResponse(t *testing.T, w *httptest.ResponseRecorder) dto.TaskResponse {
	t.Helper()

	var resp dto.TaskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseTaskListResponse(t *testing.T, w *httptest.ResponseRecorder) dto.TaskListResponse {
	t.Helper()

	var resp dto.TaskListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseUserTasksResponse(t *testing.T, w *httptest.ResponseRecorder) dto.UserTasksResponse {
	t.Helper()

	var resp dto.UserTasksResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseMessageResponse(t *testing.T, w *httptest.ResponseRecorder) dto.MessageResponse {
	t.Helper()

	var resp dto.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// containsDetail reports whether a validation detail list contains s
func containsDetail(details []string, s string) bool {
	for _, d := range details {
		if d == s {
			return true
		}
	}
	return false
}

// ptr is a helper to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
