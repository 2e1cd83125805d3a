package handler

import (
	"net/http"
	"strings"
	"testing"
)

func TestCreateUser(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	w := env.makeRequest(t, http.MethodPost, "/api/users",
		`{"username": "dave", "email": "dave@example.com", "password": "secret123"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d\nBody: %s", w.Code, w.Body.String())
	}

	user := parseUserResponse(t, w)
	if user.ID == 0 {
		t.Error("expected a non-zero user ID")
	}
	if user.Username != "dave" {
		t.Errorf("expected username dave, got %s", user.Username)
	}
	if user.Email != "dave@example.com" {
		t.Errorf("expected email dave@example.com, got %s", user.Email)
	}
	if !user.IsActive {
		t.Error("expected new user to be active")
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("response must not expose password data")
	}
}

func TestCreateUserValidation(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	tests := []struct {
		name        string
		body        string
		wantDetails []string
	}{
		{
			name:        "all fields missing",
			body:        `{}`,
			wantDetails: []string{"username is required", "email is required", "password is required"},
		},
		{
			name:        "invalid email",
			body:        `{"username": "dave", "email": "not-an-email", "password": "secret123"}`,
			wantDetails: []string{"Invalid email format"},
		},
		{
			name:        "short username",
			body:        `{"username": "da", "email": "dave@example.com", "password": "secret123"}`,
			wantDetails: []string{"Username must be at least 3 characters"},
		},
		{
			name:        "multiple violations",
			body:        `{"username": "da", "email": "nope"}`,
			wantDetails: []string{"password is required", "Invalid email format", "Username must be at least 3 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.makeRequest(t, http.MethodPost, "/api/users", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d\nBody: %s", w.Code, w.Body.String())
			}

			resp := parseErrorResponse(t, w)
			if resp.Error != "Validation failed" {
				t.Errorf("expected error 'Validation failed', got %q", resp.Error)
			}
			for _, want := range tt.wantDetails {
				if !containsDetail(resp.Details, want) {
					t.Errorf("expected details to contain %q, got %v", want, resp.Details)
				}
			}
		})
	}
}

func TestCreateUserConflict(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedTestData(t)

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "duplicate username",
			body:        `{"username": "alice", "email": "new@example.com", "password": "secret123"}`,
			wantMessage: "Username already exists",
		},
		{
			name:        "duplicate email",
			body:        `{"username": "newuser", "email": "alice@example.com", "password": "secret123"}`,
			wantMessage: "Email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.makeRequest(t, http.MethodPost, "/api/users", tt.body)

			if w.Code != http.StatusConflict {
				t.Fatalf("expected status 409, got %d\nBody: %s", w.Code, w.Body.String())
			}

			resp := parseErrorResponse(t, w)
			if resp.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, resp.Message)
			}
		})
	}
}

func TestGetUser(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedTestData(t)

	w := env.makeRequest(t, http.MethodGet, "/api/users/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}
	user := parseUserResponse(t, w)
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %s", user.Username)
	}

	w = env.makeRequest(t, http.MethodGet, "/api/users/999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown user, got %d", w.Code)
	}

	w = env.makeRequest(t, http.MethodGet, "/api/users/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for invalid id, got %d", w.Code)
	}
}

func TestUpdateUser(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedTestData(t)

	// Partial update only touches the provided fields
	w := env.makeRequest(t, http.MethodPut, "/api/users/1", `{"email": "alice2@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}
	user := parseUserResponse(t, w)
	if user.Email != "alice2@example.com" {
		t.Errorf("expected updated email, got %s", user.Email)
	}
	if user.Username != "alice" {
		t.Errorf("username should be unchanged, got %s", user.Username)
	}

	// Re-submitting the user's own username is not a conflict
	w = env.makeRequest(t, http.MethodPut, "/api/users/1", `{"username": "alice"}`)
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for own username, got %d\nBody: %s", w.Code, w.Body.String())
	}

	// Taking another user's username is
	w = env.makeRequest(t, http.MethodPut, "/api/users/1", `{"username": "bob"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409 for taken username, got %d", w.Code)
	}

	// Deactivation
	w = env.makeRequest(t, http.MethodPut, "/api/users/1", `{"is_active": false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}
	if parseUserResponse(t, w).IsActive {
		t.Error("expected user to be deactivated")
	}

	w = env.makeRequest(t, http.MethodPut, "/api/users/999", `{"email": "ghost@example.com"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown user, got %d", w.Code)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedTestData(t)

	w := env.makeRequest(t, http.MethodDelete, "/api/users/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}
	if msg := parseMessageResponse(t, w); msg.Message != "User deleted successfully" {
		t.Errorf("unexpected message %q", msg.Message)
	}

	w = env.makeRequest(t, http.MethodGet, "/api/users/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", w.Code)
	}

	// The user's tasks must be gone too
	w = env.makeRequest(t, http.MethodGet, "/api/tasks?user_id=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}
	if resp := parseTaskListResponse(t, w); resp.Pagination.Total != 0 {
		t.Errorf("expected 0 tasks after cascade delete, got %d", resp.Pagination.Total)
	}

	w = env.makeRequest(t, http.MethodDelete, "/api/users/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for repeated delete, got %d", w.Code)
	}
}

func TestListUsers(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedTestData(t)

	w := env.makeRequest(t, http.MethodGet, "/api/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}

	resp := parseUserListResponse(t, w)
	if len(resp.Users) != 3 {
		t.Errorf("expected 3 users, got %d", len(resp.Users))
	}
	if resp.Pagination.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Pagination.Total)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.PerPage != 10 {
		t.Errorf("unexpected pagination defaults: %+v", resp.Pagination)
	}
	if resp.Pagination.Pages != 1 {
		t.Errorf("expected 1 page, got %d", resp.Pagination.Pages)
	}

	// Page past the end is empty but keeps the metadata
	w = env.makeRequest(t, http.MethodGet, "/api/users?page=5", "")
	resp = parseUserListResponse(t, w)
	if len(resp.Users) != 0 {
		t.Errorf("expected empty page, got %d users", len(resp.Users))
	}
	if resp.Pagination.Page != 5 || resp.Pagination.Total != 3 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestListUserTasks(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()
	env.seedTestData(t)

	w := env.makeRequest(t, http.MethodGet, "/api/users/2/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d\nBody: %s", w.Code, w.Body.String())
	}

	resp := parseUserTasksResponse(t, w)
	if resp.User.Username != "bob" {
		t.Errorf("expected user bob, got %s", resp.User.Username)
	}
	if resp.Pagination.Total != 4 {
		t.Errorf("expected 4 tasks for bob, got %d", resp.Pagination.Total)
	}
	for _, task := range resp.Tasks {
		if task.UserID != 2 {
			t.Errorf("expected only bob's tasks, got task for user %d", task.UserID)
		}
	}

	// Status filter narrows the listing
	w = env.makeRequest(t, http.MethodGet, "/api/users/2/tasks?status=pending", "")
	resp = parseUserTasksResponse(t, w)
	if resp.Pagination.Total != 2 {
		t.Errorf("expected 2 pending tasks for bob, got %d", resp.Pagination.Total)
	}

	w = env.makeRequest(t, http.MethodGet, "/api/users/999/tasks", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown user, got %d", w.Code)
	}
}
