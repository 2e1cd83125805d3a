package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskman/internal/api/dto"
	"github.com/martijn/taskman/internal/api/util"
	"github.com/martijn/taskman/internal/core/domain"
	"github.com/martijn/taskman/internal/core/repository"
	"github.com/martijn/taskman/internal/core/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	pagination := util.ParsePagination(c.Query("page"), c.Query("per_page"))
	filter := repository.TaskFilter{ListFilter: pagination}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			writeBadRequest(c, "Invalid user_id")
			return
		}
		filter.UserID = &userID
	}
	if !parseTaskFilters(c, &filter) {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	count, err := h.taskService.CountTasks(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.TaskListResponse{
		Tasks:      make([]dto.TaskResponse, len(tasks)),
		Pagination: paginationInfo(pagination, count),
	}
	for i, task := range tasks {
		response.Tasks[i] = toTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

// GetTask handles GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "No data provided")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), service.TaskCreate{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// UpdateTask handles PUT /api/tasks/:id. A due_date of JSON null clears the
// stored value, while an absent due_date leaves it untouched.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "Invalid task ID")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "No data provided")
		return
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDateSet:  req.DueDate.Set,
	}
	if req.DueDate.Set && req.DueDate.Valid {
		update.DueDate = &req.DueDate.Value
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// parseTaskFilters reads the status and priority query parameters into the
// filter. On an invalid value it writes a 400 response and returns false.
func parseTaskFilters(c *gin.Context, filter *repository.TaskFilter) bool {
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := domain.ParseTaskStatus(statusStr)
		if err != nil {
			writeBadRequest(c, err.Error())
			return false
		}
		filter.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority, err := domain.ParseTaskPriority(priorityStr)
		if err != nil {
			writeBadRequest(c, err.Error())
			return false
		}
		filter.Priority = &priority
	}
	return true
}

func toTaskResponse(task *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		UserID:      task.UserID,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
