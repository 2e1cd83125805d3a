package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskman/internal/api/dto"
	"github.com/martijn/taskman/internal/api/util"
	"github.com/martijn/taskman/internal/core/service"
)

// writeError maps a service error onto the HTTP error taxonomy. Anything
// outside the taxonomy is logged and surfaced as a generic 500.
func writeError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Details: validationErr.Details,
			Code:    http.StatusBadRequest,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: notFoundErr.Error(),
			Code:    http.StatusNotFound,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: conflictErr.Message,
			Code:    http.StatusConflict,
		})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred",
			Code:    http.StatusInternalServerError,
		})
	}
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

func paginationInfo(f util.ListFilter, total int) dto.PaginationInfo {
	return dto.PaginationInfo{
		Page:    f.Page,
		PerPage: f.PerPage,
		Total:   total,
		Pages:   util.PageCount(total, f.PerPage),
	}
}
