package service

import (
	"context"
	"errors"
	"time"

	"github.com/martijn/taskman/internal/core/domain"
	"github.com/martijn/taskman/internal/core/repository"
)

type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo}
}

// TaskCreate holds the payload for task creation. Optional fields default to
// the entity defaults when nil.
type TaskCreate struct {
	Title       string
	Description string
	UserID      int64
	Status      *string
	Priority    *string
	DueDate     *string
}

// TaskUpdate holds the fields of a partial task update. Nil fields are left
// unchanged. DueDateSet distinguishes an omitted due_date from an explicit
// clear, so {"due_date": null} removes the deadline.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
	DueDateSet  bool
}

// DashboardStats aggregates entity counts for the dashboard views.
type DashboardStats struct {
	TotalUsers      int `json:"total_users"`
	TotalTasks      int `json:"total_tasks"`
	PendingTasks    int `json:"pending_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
}

// CreateTask validates the payload, checks the owner exists and persists a
// new task. A missing owner is a not-found condition, not a validation one.
func (s *TaskService) CreateTask(ctx context.Context, create TaskCreate) (*domain.Task, error) {
	input := domain.TaskInput{
		Title:    &create.Title,
		UserID:   &create.UserID,
		Status:   create.Status,
		Priority: create.Priority,
	}
	if details := domain.ValidateTask(input, []string{"title", "user_id"}); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	if _, err := s.userRepo.FindByID(ctx, create.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "User", ID: create.UserID}
		}
		return nil, err
	}

	task := domain.NewTask(create.Title, create.Description, create.UserID)

	// Route an initial status through the transition rule so a task created
	// as completed carries a completion timestamp from the start.
	if create.Status != nil && *create.Status != "" {
		status, err := domain.ParseTaskStatus(*create.Status)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		task.SetStatus(status, time.Now())
	}

	if create.Priority != nil && *create.Priority != "" {
		priority, err := domain.ParseTaskPriority(*create.Priority)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		task.Priority = priority
	}

	if create.DueDate != nil && *create.DueDate != "" {
		due, err := domain.ParseDueDate(*create.DueDate)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		task.DueDate = &due
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Task", ID: id}
		}
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update. A status change runs through the
// transition rule exactly once, after validation and before persistence.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	input := domain.TaskInput{
		Title:    update.Title,
		Status:   update.Status,
		Priority: update.Priority,
	}
	if details := domain.ValidateTask(input, nil); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	if update.Title != nil {
		task.Title = *update.Title
	}

	if update.Description != nil {
		task.Description = *update.Description
	}

	if update.Status != nil && *update.Status != "" {
		status, err := domain.ParseTaskStatus(*update.Status)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		task.SetStatus(status, time.Now())
	}

	if update.Priority != nil && *update.Priority != "" {
		priority, err := domain.ParseTaskPriority(*update.Priority)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		task.Priority = priority
	}

	if update.DueDateSet {
		if update.DueDate != nil && *update.DueDate != "" {
			due, err := domain.ParseDueDate(*update.DueDate)
			if err != nil {
				return nil, NewValidationError(err.Error())
			}
			task.DueDate = &due
		} else {
			task.DueDate = nil
		}
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Task", ID: id}
		}
		return nil, err
	}

	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "Task", ID: id}
		}
		return err
	}
	return nil
}

// ListTasks lists tasks with filtering, newest-created first
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	return s.taskRepo.List(ctx, filter)
}

// CountTasks counts tasks matching the filter
func (s *TaskService) CountTasks(ctx context.Context, filter repository.TaskFilter) (int, error) {
	return s.taskRepo.Count(ctx, filter)
}

// GetDashboardStats aggregates the user and task counts shown on the dashboard.
func (s *TaskService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx, repository.UserFilter{}); err != nil {
		return nil, err
	}
	if stats.TotalTasks, err = s.taskRepo.Count(ctx, repository.TaskFilter{}); err != nil {
		return nil, err
	}
	if stats.PendingTasks, err = s.taskRepo.CountByStatus(ctx, domain.StatusPending); err != nil {
		return nil, err
	}
	if stats.InProgressTasks, err = s.taskRepo.CountByStatus(ctx, domain.StatusInProgress); err != nil {
		return nil, err
	}
	if stats.CompletedTasks, err = s.taskRepo.CountByStatus(ctx, domain.StatusCompleted); err != nil {
		return nil, err
	}

	return stats, nil
}
