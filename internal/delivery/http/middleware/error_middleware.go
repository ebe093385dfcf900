package middleware

import (
	"context"
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		// A blown request deadline surfaces as a plain context error
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperror.Unavailable(err)
		}

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// Never expose internal error details to clients
			logger.FromContext(c.Request.Context()).Error("unhandled error",
				"error", err, "path", c.FullPath())
			appErr = apperror.Internal(err)
		} else if appErr.ErrCode == apperror.CodeForbidden {
			security.DefaultLogger().LogForbidden(c.Request.Context(),
				c.GetString(string(domain.KeyUserID)), c.ClientIP(),
				c.GetString(string(domain.KeyRequestID)), c.FullPath())
		} else if appErr.Code >= http.StatusInternalServerError {
			logger.FromContext(c.Request.Context()).Error("request failed",
				"code", appErr.ErrCode, "error", appErr.Err, "path", c.FullPath())
		}

		response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
			Code:    appErr.ErrCode,
			Details: appErr.Details,
		})
	}
}
