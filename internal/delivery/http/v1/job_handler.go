package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/textnorm"

	"github.com/gin-gonic/gin"
)

// TotalCountHeader carries the unpaginated match count of list endpoints.
const TotalCountHeader = "X-Total-Count"

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/search", handler.Search)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}

	protected.GET("/recruiters/jobs", handler.ListMine)
}

type JobRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	CompanyName  string `json:"company_name" binding:"required,max=200"`
	Location     string `json:"location" binding:"max=200"`
	Description  string `json:"description" binding:"max=20000"`
	ContractType string `json:"contract_type" binding:"max=50"`
	Level        string `json:"level" binding:"max=50"`
	TimeType     string `json:"time_type" binding:"max=50"`
	WorkMode     string `json:"work_mode" binding:"max=50"`
	Field        string `json:"field" binding:"max=100"`
	SalaryRange  string `json:"salary_range" binding:"max=100"`
	Requirements string `json:"requirements" binding:"max=20000"`
	Benefits     string `json:"benefits" binding:"max=20000"`
}

func (r JobRequest) toJob() *domain.Job {
	return &domain.Job{
		Title:        r.Title,
		CompanyName:  r.CompanyName,
		Location:     r.Location,
		Description:  r.Description,
		ContractType: r.ContractType,
		Level:        r.Level,
		TimeType:     r.TimeType,
		WorkMode:     r.WorkMode,
		Field:        r.Field,
		SalaryRange:  r.SalaryRange,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
	}
}

func (h *JobHandler) respondPage(c *gin.Context, filter domain.JobFilter) {
	jobs, total, err := h.jobUC.SearchJobs(c.Request.Context(), filter,
		queryInt(c, "page", 1), queryInt(c, "page_size", 0))
	if err != nil {
		c.Error(err)
		return
	}
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Newest non-expired jobs first
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200        {object}  response.Response{data=[]domain.Job}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	h.respondPage(c, domain.JobFilter{})
}

// SearchJobs godoc
// @Summary      Search jobs
// @Description  Multi-valued filters take comma separated values; all filters are AND-ed
// @Tags         jobs
// @Produce      json
// @Param        contract_type    query     string  false  "Contract types"
// @Param        level            query     string  false  "Levels"
// @Param        time_type        query     string  false  "Time types"
// @Param        work_mode        query     string  false  "Work modes"
// @Param        field            query     string  false  "Fields"
// @Param        location         query     string  false  "Location substring"
// @Param        keyword          query     string  false  "Matches title, company or description"
// @Param        include_expired  query     bool    false  "Also return expired jobs"
// @Param        page             query     int     false  "Page number"
// @Param        page_size        query     int     false  "Page size (max 100)"
// @Success      200              {object}  response.Response{data=[]domain.Job}
// @Router       /jobs/search [get]
func (h *JobHandler) Search(c *gin.Context) {
	includeExpired, _ := strconv.ParseBool(c.Query("include_expired"))
	filter := domain.JobFilter{
		ContractTypes:  textnorm.List(c.QueryArray("contract_type")...),
		Levels:         textnorm.List(c.QueryArray("level")...),
		TimeTypes:      textnorm.List(c.QueryArray("time_type")...),
		WorkModes:      textnorm.List(c.QueryArray("work_mode")...),
		Fields:         textnorm.List(c.QueryArray("field")...),
		Location:       c.Query("location"),
		Keyword:        c.Query("keyword"),
		IncludeExpired: includeExpired,
	}
	h.respondPage(c, filter)
}

// GetJob godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a new job posting (recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     SessionCookie
func (h *JobHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req JobRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	job := req.toJob()
	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Partial update; omitted fields are kept (owner only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int              true  "Job ID"
// @Param        job  body      domain.JobPatch  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     SessionCookie
func (h *JobHandler) Update(c *gin.Context) {
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

	var patch domain.JobPatch
	if err := bindJSON(c, &patch); err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, userID, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Refused while the job has applications (owner only)
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     SessionCookie
func (h *JobHandler) Delete(c *gin.Context) {
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

	if err := h.jobUC.DeleteJob(c.Request.Context(), id, userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", gin.H{"ok": true})
}

// ListRecruiterJobs godoc
// @Summary      List my job postings
// @Description  Every job owned by the calling recruiter, expired ones included
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      403  {object}  response.Response
// @Router       /recruiters/jobs [get]
// @Security     SessionCookie
func (h *JobHandler) ListMine(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	jobs, err := h.jobUC.ListJobsByOwner(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}
