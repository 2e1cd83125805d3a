package domain

import (
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var (
	taskStatuses   = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
	taskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
)

// StatusValues returns the recognized status strings in declaration order.
func StatusValues() []string {
	values := make([]string, len(taskStatuses))
	for i, s := range taskStatuses {
		values[i] = string(s)
	}
	return values
}

// PriorityValues returns the recognized priority strings in declaration order.
func PriorityValues() []string {
	values := make([]string, len(taskPriorities))
	for i, p := range taskPriorities {
		values[i] = string(p)
	}
	return values
}

// ParseTaskStatus converts a string to a TaskStatus, rejecting unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, status := range taskStatuses {
		if s == string(status) {
			return status, nil
		}
	}
	return "", fmt.Errorf("Status must be one of: %s", strings.Join(StatusValues(), ", "))
}

// ParseTaskPriority converts a string to a TaskPriority, rejecting unknown values.
func ParseTaskPriority(s string) (TaskPriority, error) {
	for _, priority := range taskPriorities {
		if s == string(priority) {
			return priority, nil
		}
	}
	return "", fmt.Errorf("Priority must be one of: %s", strings.Join(PriorityValues(), ", "))
}

type Task struct {
	ID          int64        `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Status      TaskStatus   `db:"status"`
	Priority    TaskPriority `db:"priority"`
	UserID      int64        `db:"user_id"`
	DueDate     *time.Time   `db:"due_date"`
	CompletedAt *time.Time   `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func NewTask(title, description string, userID int64) *Task {
	now := time.Now().UTC()
	return &Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Priority:    PriorityMedium,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// dueDateFormats are the ISO-8601 shapes accepted for due_date input. A
// trailing Z parses as UTC via the RFC3339 forms.
var dueDateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate parses an ISO-8601 due date string.
func ParseDueDate(value string) (time.Time, error) {
	for _, format := range dueDateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("Invalid due_date format. Use ISO format.")
}

// SetStatus changes the task status and derives completed_at from the
// transition. Entering completed stamps the timestamp, leaving completed
// clears it, any other transition leaves it untouched.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	old := t.Status
	t.Status = status

	if old != StatusCompleted && status == StatusCompleted {
		completedAt := now.UTC()
		t.CompletedAt = &completedAt
	} else if old == StatusCompleted && status != StatusCompleted {
		t.CompletedAt = nil
	}
}
