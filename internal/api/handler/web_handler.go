package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskman/internal/api/util"
	"github.com/martijn/taskman/internal/core/domain"
	"github.com/martijn/taskman/internal/core/repository"
	"github.com/martijn/taskman/internal/core/service"
)

// WebHandler serves the server-rendered dashboard pages. The pages read
// through the same services as the JSON API, so both stay consistent.
type WebHandler struct {
	userService *service.UserService
	taskService *service.TaskService
}

func NewWebHandler(userService *service.UserService, taskService *service.TaskService) *WebHandler {
	return &WebHandler{
		userService: userService,
		taskService: taskService,
	}
}

// taskView pairs a task with its owner's username for rendering.
type taskView struct {
	*domain.Task
	Username string
}

// Index renders the dashboard overview with aggregate stats and the ten most
// recently created tasks.
func (h *WebHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.taskService.GetDashboardStats(ctx)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	recent, err := h.taskService.ListTasks(ctx, repository.TaskFilter{
		ListFilter: util.ListFilter{Page: 1, PerPage: 10},
	})
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	views, err := h.taskViews(c, recent)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Stats":       stats,
		"RecentTasks": views,
	})
}

// Tasks renders the paginated task listing. Unlike the API, an invalid filter
// value does not fail the page: the filter is dropped and a notice shown.
func (h *WebHandler) Tasks(c *gin.Context) {
	ctx := c.Request.Context()

	pagination := util.ParsePagination(c.Query("page"), "")
	filter := repository.TaskFilter{ListFilter: pagination}

	var filterError string
	if statusStr := c.Query("status"); statusStr != "" {
		if status, err := domain.ParseTaskStatus(statusStr); err != nil {
			filterError = err.Error()
		} else {
			filter.Status = &status
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		if priority, err := domain.ParseTaskPriority(priorityStr); err != nil {
			filterError = err.Error()
		} else {
			filter.Priority = &priority
		}
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := strconv.ParseInt(userIDStr, 10, 64); err == nil {
			filter.UserID = &userID
		}
	}

	tasks, err := h.taskService.ListTasks(ctx, filter)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	count, err := h.taskService.CountTasks(ctx, filter)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	views, err := h.taskViews(c, tasks)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	active := true
	users, err := h.userService.ListUsers(ctx, repository.UserFilter{
		IsActive: &active,
		Order:    repository.UserOrderUsername,
	})
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "tasks.html", gin.H{
		"Tasks":       views,
		"Pagination":  paginationInfo(pagination, count),
		"Users":       users,
		"FilterError": filterError,
		"Status":      c.Query("status"),
		"Priority":    c.Query("priority"),
		"UserID":      c.Query("user_id"),
		"Statuses":    domain.StatusValues(),
		"Priorities":  domain.PriorityValues(),
	})
}

// Users renders the paginated user listing, newest first.
func (h *WebHandler) Users(c *gin.Context) {
	ctx := c.Request.Context()

	pagination := util.ParsePagination(c.Query("page"), "")
	users, err := h.userService.ListUsers(ctx, repository.UserFilter{
		ListFilter: pagination,
		Order:      repository.UserOrderRecent,
	})
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	count, err := h.userService.CountUsers(ctx, repository.UserFilter{})
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	active := true
	activeCount, err := h.userService.CountUsers(ctx, repository.UserFilter{IsActive: &active})
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	totalTasks, err := h.taskService.CountTasks(ctx, repository.TaskFilter{})
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "users.html", gin.H{
		"Users":       users,
		"Pagination":  paginationInfo(pagination, count),
		"ActiveUsers": activeCount,
		"TotalTasks":  totalTasks,
	})
}

// UserTasks renders the per-user task listing at /user/:id/tasks.
func (h *WebHandler) UserTasks(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	user, err := h.userService.GetUser(ctx, id)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	pagination := util.ParsePagination(c.Query("page"), "")
	filter := repository.TaskFilter{ListFilter: pagination, UserID: &id}

	tasks, err := h.taskService.ListTasks(ctx, filter)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	count, err := h.taskService.CountTasks(ctx, filter)
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "user_tasks.html", gin.H{
		"User":       user,
		"Tasks":      tasks,
		"Pagination": paginationInfo(pagination, count),
	})
}

// taskViews joins tasks with their owners' usernames.
func (h *WebHandler) taskViews(c *gin.Context, tasks []*domain.Task) ([]taskView, error) {
	users, err := h.userService.ListUsers(c.Request.Context(), repository.UserFilter{})
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Username
	}

	views := make([]taskView, len(tasks))
	for i, task := range tasks {
		views[i] = taskView{Task: task, Username: names[task.UserID]}
	}
	return views, nil
}

func (h *WebHandler) renderServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "500.html", nil)
}
