package middleware

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "session_token"

// SessionMiddleware resolves the session cookie and rejects the request with
// 401 when there is no live session. On success the user id, email and role
// are bound to both the gin context and the request context.
func SessionMiddleware(sessions domain.SessionUsecase, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Error(apperror.Unauthorized("Authentication required"))
			c.Abort()
			return
		}

		userID, ok, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		if !ok {
			logSessionInvalid(c, "unknown_or_expired")
			c.Error(apperror.Unauthorized("Session expired or invalid"))
			c.Abort()
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), userID)
		if err != nil {
			if apperror.Is(err, apperror.CodeNotFound) {
				logSessionInvalid(c, "user_missing")
				c.Error(apperror.Unauthorized("Session expired or invalid"))
			} else {
				c.Error(err)
			}
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), string(user.AccountType))
		c.Set(string(domain.KeySessionToken), token)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, user.AccountType)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, user.ID))

		c.Next()
	}
}

func logSessionInvalid(c *gin.Context, reason string) {
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventSessionInvalid,
		SubjectType:  "ip",
		SubjectValue: c.ClientIP(),
		IP:           c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		RequestID:    c.GetString(string(domain.KeyRequestID)),
		Details:      map[string]interface{}{"reason": reason, "path": c.FullPath()},
	})
}
