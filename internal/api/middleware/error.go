package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/taskman/internal/api/dto"
)

// ErrorHandlerMiddleware recovers from panics and converts unhandled errors
// into a generic 500 response without leaking internal detail
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:   "Internal Server Error",
					Message: "An unexpected error occurred",
					Code:    http.StatusInternalServerError,
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, c.Errors.Last())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "An unexpected error occurred",
				Code:    http.StatusInternalServerError,
			})
		}
	}
}
