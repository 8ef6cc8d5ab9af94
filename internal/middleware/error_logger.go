package middleware

import (
	"net/http"
	"strings"

	"word-market/internal/services"

	"github.com/gin-gonic/gin"
)

// ErrorLogger records server errors to the error log table so they show
// up on the admin dashboard.
func ErrorLogger(adminService *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}

		var messages []string
		for _, ginErr := range c.Errors {
			messages = append(messages, ginErr.Error())
		}
		message := strings.Join(messages, "; ")
		if message == "" {
			message = http.StatusText(c.Writer.Status())
		}

		endpoint := c.Request.Method + " " + c.FullPath()
		userInfo := c.ClientIP()
		adminService.LogError(c.Request.Context(), "http_error", message, &endpoint, &userInfo)
	}
}
