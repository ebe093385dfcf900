package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC   domain.AuthUsecase
	sessions domain.SessionUsecase
	config   *config.Config
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, sessions domain.SessionUsecase, cfg *config.Config, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC:   authUC,
		sessions: sessions,
		config:   cfg,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", loginLimiter, handler.Login)
		// Logout stays public so a stale cookie can always be cleared
		publicAuth.POST("/logout", handler.Logout)
	}

	protected.GET("/auth/me", handler.Me)
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	AccountType domain.Role `json:"account_type"`
	CreatedAt   time.Time   `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, AccountType: u.AccountType, CreatedAt: u.CreatedAt}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", h.config.CookieDomain, h.config.CookieSecure, true)
}

// startSession replaces any session the client already holds.
func (h *AuthHandler) startSession(c *gin.Context, userID string) error {
	previous, _ := c.Cookie(middleware.SessionCookieName)
	token, err := h.sessions.Create(c.Request.Context(), userID, previous)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	return nil
}

// Register godoc
// @Summary      User Registration
// @Description  Create a candidate or recruiter account and open a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      200       {object}  response.Response{data=UserResponse}
// @Failure      400       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.Email, req.Password, req.AccountType)
	if err != nil {
		c.Error(err)
		return
	}

	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:        security.EventRegistered,
		SubjectType:  "user_id",
		SubjectValue: user.ID,
		IP:           c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		RequestID:    c.GetString(string(domain.KeyRequestID)),
		Details:      map[string]interface{}{"account_type": string(user.AccountType)},
	})

	if err := h.startSession(c, user.ID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Registration successful", newUserResponse(user))
}

// Login godoc
// @Summary      User Login
// @Description  Authenticate with email and password; sets the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=UserResponse}
// @Failure      400    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	reqID := c.GetString(string(domain.KeyRequestID))
	user, err := h.authUC.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperror.Is(err, apperror.CodeInvalidCredentials) {
			security.DefaultLogger().LogLoginFailed(c.Request.Context(), req.Email, c.ClientIP(), c.GetHeader("User-Agent"), reqID)
		}
		c.Error(err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		c.Error(err)
		return
	}
	security.DefaultLogger().LogLoginSuccess(c.Request.Context(), user.ID, c.ClientIP(), c.GetHeader("User-Agent"), reqID)

	response.Success(c, http.StatusOK, "Login successful", newUserResponse(user))
}

// Logout godoc
// @Summary      User Logout
// @Description  Destroy the current session and clear the cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			c.Error(err)
			return
		}
		security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventLogout,
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			RequestID: c.GetString(string(domain.KeyRequestID)),
		})
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logged out", gin.H{"ok": true})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", newUserResponse(user))
}
