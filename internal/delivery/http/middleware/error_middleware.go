package middleware

import (
	"errors"
	"net/http"

	"go-recruitment-chatbot/internal/delivery/http/response"
	"go-recruitment-chatbot/pkg/apperror"
	"go-recruitment-chatbot/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients.
				reqID, _ := c.Get("RequestID")
				logger.Log.Error("unhandled request error",
					"path", c.FullPath(), "request_id", reqID, "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
