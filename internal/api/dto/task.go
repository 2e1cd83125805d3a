package dto

import "time"

// CreateTaskRequest represents the task creation request
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	UserID      int64   `json:"user_id"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a partial task update. DueDate is Optional so
// an explicit null clears the deadline while an omitted field keeps it.
type UpdateTaskRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Priority    *string          `json:"priority,omitempty"`
	DueDate     Optional[string] `json:"due_date"`
}

// TaskResponse represents a task. Nullable timestamps are projected as null
// rather than omitted so the completed_at invariant is observable.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	UserID      int64      `json:"user_id"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse represents a page of tasks
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Pagination PaginationInfo `json:"pagination"`
}

// UserTasksResponse represents a page of a single user's tasks
type UserTasksResponse struct {
	User       UserResponse   `json:"user"`
	Tasks      []TaskResponse `json:"tasks"`
	Pagination PaginationInfo `json:"pagination"`
}
