package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxProfileBody bounds a profile save, inline picture included.
const maxProfileBody = 8 << 20

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(public, protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	protected.POST("/profile/save", handler.Save)
	protected.GET("/profile/me", handler.Me)
	protected.DELETE("/profile", handler.Delete)

	public.GET("/profile/:email", handler.GetByEmail)
}

// ProfileEnvelope wraps a profile that may not exist.
type ProfileEnvelope struct {
	Profile domain.Profile `json:"profile"`
}

// SaveProfile godoc
// @Summary      Save my profile
// @Description  Replaces the whole profile. Candidates send personal fields and skills/experiences/educations/activities; recruiters send personal and company fields.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      object  true  "Role-shaped profile"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /profile/save [post]
// @Security     SessionCookie
func (h *ProfileHandler) Save(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxProfileBody)
	raw, err := c.GetRawData()
	if err != nil {
		c.Error(apperror.BadRequest("Profile payload is too large or unreadable"))
		return
	}
	if len(raw) == 0 {
		c.Error(apperror.BadRequest("Request body is required"))
		return
	}

	profile, err := h.profileUC.Save(c.Request.Context(), userID, raw)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", ProfileEnvelope{Profile: profile})
}

// GetMyProfile godoc
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=ProfileEnvelope}
// @Router       /profile/me [get]
// @Security     SessionCookie
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	profile, err := h.profileUC.Get(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", ProfileEnvelope{Profile: profile})
}

// DeleteProfile godoc
// @Summary      Delete my profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile [delete]
// @Security     SessionCookie
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.profileUC.Delete(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile deleted", gin.H{"ok": true})
}

// GetProfileByEmail godoc
// @Summary      Public profile lookup
// @Description  Returns {profile: null} when the email is unknown or has no profile
// @Tags         profile
// @Produce      json
// @Param        email  path      string  true  "Account email"
// @Success      200    {object}  response.Response{data=ProfileEnvelope}
// @Router       /profile/{email} [get]
func (h *ProfileHandler) GetByEmail(c *gin.Context) {
	profile, err := h.profileUC.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", ProfileEnvelope{Profile: profile})
}
