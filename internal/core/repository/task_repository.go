package repository

import (
	"context"

	"github.com/martijn/taskman/internal/api/util"
	"github.com/martijn/taskman/internal/core/domain"
)

// TaskFilter holds filtering and pagination options for task listings
type TaskFilter struct {
	util.ListFilter
	UserID   *int64
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int, error)
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int, error)
}
