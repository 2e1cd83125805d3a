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

type UserHandler struct {
	userService *service.UserService
	taskService *service.TaskService
}

func NewUserHandler(userService *service.UserService, taskService *service.TaskService) *UserHandler {
	return &UserHandler{
		userService: userService,
		taskService: taskService,
	}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	pagination := util.ParsePagination(c.Query("page"), c.Query("per_page"))
	filter := repository.UserFilter{ListFilter: pagination}

	users, err := h.userService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	count, err := h.userService.CountUsers(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.UserListResponse{
		Users:      make([]dto.UserResponse, len(users)),
		Pagination: paginationInfo(pagination, count),
	}
	for i, user := range users {
		response.Users[i] = toUserResponse(user)
	}

	c.JSON(http.StatusOK, response)
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "No data provided")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "Invalid user ID")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "No data provided")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser handles DELETE /api/users/:id. The store cascades the delete to
// the user's tasks.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// ListUserTasks handles GET /api/users/:id/tasks
func (h *UserHandler) ListUserTasks(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeBadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	pagination := util.ParsePagination(c.Query("page"), c.Query("per_page"))
	filter := repository.TaskFilter{ListFilter: pagination, UserID: &id}
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

	response := dto.UserTasksResponse{
		User:       toUserResponse(user),
		Tasks:      make([]dto.TaskResponse, len(tasks)),
		Pagination: paginationInfo(pagination, count),
	}
	for i, task := range tasks {
		response.Tasks[i] = toTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
