package v1

import (
	"fmt"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	applications := protected.Group("/applications")
	{
		applications.POST("", handler.Apply)
		applications.GET("", handler.ListMine)
		applications.GET("/stats", handler.Stats)
		applications.GET("/:id", handler.Get)
		applications.PUT("/:id", handler.UpdateStatus)
		applications.DELETE("/:id", handler.Delete)
	}

	jobs := protected.Group("/jobs/:id/applications")
	{
		jobs.GET("", handler.ListByJob)
		jobs.GET("/export", handler.Export)
	}
}

type ApplyRequest struct {
	JobID       int64   `json:"job_id" binding:"required,gt=0"`
	CoverLetter *string `json:"cover_letter" binding:"omitempty,max=10000"`
}

type UpdateStatusRequest struct {
	Status domain.ApplicationStatus `json:"status" binding:"required,app_status"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Candidates only; one application per job, expired jobs are refused
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      ApplyRequest  true  "Application"
// @Success      201          {object}  response.Response{data=domain.Application}
// @Failure      400          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /applications [post]
// @Security     SessionCookie
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req ApplyRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.appUC.Apply(c.Request.Context(), userID, req.JobID, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMyApplications godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Router       /applications [get]
// @Security     SessionCookie
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	apps, err := h.appUC.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ApplicationStats godoc
// @Summary      Count my applications by status
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ApplicationStats}
// @Router       /applications/stats [get]
// @Security     SessionCookie
func (h *ApplicationHandler) Stats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	stats, err := h.appUC.Stats(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application stats", stats)
}

// GetApplication godoc
// @Summary      Get an application
// @Description  Visible to the applicant and to the owner of the job
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     SessionCookie
func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	app, err := h.appUC.Get(c.Request.Context(), id, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// UpdateApplicationStatus godoc
// @Summary      Change application status
// @Description  Allowed for the applicant and for the owner of the job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Application ID"
// @Param        status  body      UpdateStatusRequest  true  "New status"
// @Success      200     {object}  response.Response{data=domain.Application}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /applications/{id} [put]
// @Security     SessionCookie
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.appUC.UpdateStatus(c.Request.Context(), id, req.Status, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

// DeleteApplication godoc
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     SessionCookie
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.appUC.Delete(c.Request.Context(), id, userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", gin.H{"ok": true})
}

// ListJobApplications godoc
// @Summary      List applicants of a job
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     SessionCookie
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	apps, err := h.appUC.ListByJob(c.Request.Context(), jobID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ExportJobApplications godoc
// @Summary      Export applicants of a job
// @Description  Excel workbook with one row per application
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      int  true  "Job ID"
// @Success      200  {file}    file
// @Failure      403  {object}  response.Response
// @Router       /jobs/{id}/applications/export [get]
// @Security     SessionCookie
func (h *ApplicationHandler) Export(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	data, err := h.appUC.ExportByJob(c.Request.Context(), jobID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="job_%d_applicants.xlsx"`, jobID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
