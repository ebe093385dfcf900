package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockAuth struct{ mock.Mock }

func (m *MockAuth) Register(ctx context.Context, email, password, accountType string) (*domain.User, error) {
	args := m.Called(ctx, email, password, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuth) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuth) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuth) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockSessions struct{ mock.Mock }

func (m *MockSessions) Create(ctx context.Context, userID, previousToken string) (string, error) {
	args := m.Called(ctx, userID, previousToken)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) Resolve(ctx context.Context, token string) (string, bool, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSessions) Destroy(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessions) TTL() time.Duration { return time.Hour }

type MockJobs struct{ mock.Mock }

func (m *MockJobs) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	return m.Called(ctx, userID, job).Error(0)
}

func (m *MockJobs) UpdateJob(ctx context.Context, jobID int64, userID string, patch domain.JobPatch) (*domain.Job, error) {
	args := m.Called(ctx, jobID, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobs) DeleteJob(ctx context.Context, jobID int64, userID string) error {
	return m.Called(ctx, jobID, userID).Error(0)
}

func (m *MockJobs) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobs) SearchJobs(ctx context.Context, filter domain.JobFilter, page, pageSize int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobs) ListJobsByOwner(ctx context.Context, userID string) ([]domain.Job, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Job), args.Error(1)
}

type MockApplications struct{ mock.Mock }

func (m *MockApplications) Apply(ctx context.Context, userID string, jobID int64, coverLetter *string) (*domain.Application, error) {
	args := m.Called(ctx, userID, jobID, coverLetter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplications) ListMine(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplications) Stats(ctx context.Context, userID string) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}

func (m *MockApplications) Delete(ctx context.Context, id int64, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockApplications) Get(ctx context.Context, id int64, userID string) (*domain.Application, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplications) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, userID string) (*domain.Application, error) {
	args := m.Called(ctx, id, status, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplications) ListByJob(ctx context.Context, jobID int64, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplications) ExportByJob(ctx context.Context, jobID int64, userID string) ([]byte, error) {
	args := m.Called(ctx, jobID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockProfiles struct{ mock.Mock }

func (m *MockProfiles) Save(ctx context.Context, userID string, raw json.RawMessage) (domain.Profile, error) {
	args := m.Called(ctx, userID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockProfiles) Get(ctx context.Context, userID string) (domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockProfiles) GetByEmail(ctx context.Context, email string) (domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockProfiles) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type api struct {
	engine   *gin.Engine
	auth     *MockAuth
	sessions *MockSessions
	jobs     *MockJobs
	apps     *MockApplications
	profiles *MockProfiles
}

const (
	candidateToken = "cand-token"
	recruiterToken = "rec-token"
)

var (
	candidate = &domain.User{ID: "cand", Email: "cand@example.com", AccountType: domain.RoleCandidate}
	recruiter = &domain.User{ID: "rec", Email: "rec@example.com", AccountType: domain.RoleRecruiter}
)

func newAPI(t *testing.T) *api {
	t.Helper()
	a := &api{
		auth:     new(MockAuth),
		sessions: new(MockSessions),
		jobs:     new(MockJobs),
		apps:     new(MockApplications),
		profiles: new(MockProfiles),
	}
	a.sessions.On("Resolve", mock.Anything, candidateToken).Return("cand", true, nil).Maybe()
	a.sessions.On("Resolve", mock.Anything, recruiterToken).Return("rec", true, nil).Maybe()
	a.sessions.On("Resolve", mock.Anything, mock.Anything).Return("", false, nil).Maybe()
	a.auth.On("GetCurrentUser", mock.Anything, "cand").Return(candidate, nil).Maybe()
	a.auth.On("GetCurrentUser", mock.Anything, "rec").Return(recruiter, nil).Maybe()

	cfg := &config.Config{
		Environment:    "test",
		FrontendURL:    "http://localhost:3000",
		RequestTimeout: 5 * time.Second,
	}
	a.engine = v1.NewRouter(v1.RouterDeps{
		AuthUC:        a.auth,
		SessionUC:     a.sessions,
		JobUC:         a.jobs,
		ApplicationUC: a.apps,
		ProfileUC:     a.profiles,
		HealthUC:      usecase.NewHealthUsecase(nil),
		Config:        cfg,
	})
	return a
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	RequestID string `json:"request_id"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	a := newAPI(t)
	a.auth.On("Authenticate", mock.Anything, "cand@example.com", "secret123").Return(candidate, nil)
	a.sessions.On("Create", mock.Anything, "cand", "").Return("fresh-token", nil)

	w := a.do(http.MethodPost, "/v1/auth/login", "", v1.LoginRequest{Email: "cand@example.com", Password: "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "fresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	env := decode(t, w)
	var user v1.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, domain.RoleCandidate, user.AccountType)
	assert.NotContains(t, string(env.Data), "password")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newAPI(t)
	a.auth.On("Authenticate", mock.Anything, "x@example.com", "nope").
		Return(nil, apperror.InvalidCredentials())

	w := a.do(http.MethodPost, "/v1/auth/login", "", v1.LoginRequest{Email: "x@example.com", Password: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, sessionCookie(w))
	assert.Equal(t, apperror.CodeInvalidCredentials, decode(t, w).Error.Code)
	a.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginRequiresBody(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	a := newAPI(t)
	a.sessions.On("Destroy", mock.Anything, candidateToken).Return(nil)

	w := a.do(http.MethodPost, "/v1/auth/logout", candidateToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)

	// without a cookie logout is still fine
	w = a.do(http.MethodPost, "/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	a.sessions.AssertNumberOfCalls(t, "Destroy", 1)
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	a := newAPI(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/auth/me"},
		{http.MethodPost, "/v1/jobs"},
		{http.MethodGet, "/v1/applications"},
		{http.MethodGet, "/v1/profile/me"},
		{http.MethodGet, "/v1/jobs/1/applications/export"},
	} {
		w := a.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
		assert.Equal(t, apperror.CodeUnauthenticated, decode(t, w).Error.Code, tc.path)

		w = a.do(tc.method, tc.path, "forged", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestMe(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/v1/auth/me", recruiterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user v1.UserResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &user))
	assert.Equal(t, "rec", user.ID)
	assert.Equal(t, domain.RoleRecruiter, user.AccountType)
}

func TestListJobsSetsTotalHeader(t *testing.T) {
	a := newAPI(t)
	jobs := []domain.Job{{ID: 2, Title: "Go dev"}, {ID: 1, Title: "SRE"}}
	a.jobs.On("SearchJobs", mock.Anything, domain.JobFilter{}, 2, 2).Return(jobs, int64(5), nil)

	w := a.do(http.MethodGet, "/v1/jobs?page=2&page_size=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get(v1.TotalCountHeader))

	var got []domain.Job
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestSearchJobsFilters(t *testing.T) {
	a := newAPI(t)
	a.jobs.On("SearchJobs", mock.Anything, mock.MatchedBy(func(f domain.JobFilter) bool {
		return assert.ObjectsAreEqual([]string{"CDI", "CDD"}, f.ContractTypes) &&
			f.Keyword == "golang" && f.IncludeExpired
	}), 1, 0).Return([]domain.Job{}, int64(0), nil)

	w := a.do(http.MethodGet, "/v1/jobs/search?contract_type=CDI,CDD&keyword=golang&include_expired=true", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get(v1.TotalCountHeader))
	a.jobs.AssertExpectations(t)
}

func TestCreateJobValidation(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/v1/jobs", recruiterToken, map[string]string{"company_name": "Acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decode(t, w).Error.Code)
	a.jobs.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateJob(t *testing.T) {
	a := newAPI(t)
	a.jobs.On("CreateJob", mock.Anything, "rec", mock.AnythingOfType("*domain.Job")).
		Run(func(args mock.Arguments) { args.Get(2).(*domain.Job).ID = 9 }).
		Return(nil)

	w := a.do(http.MethodPost, "/v1/jobs", recruiterToken, v1.JobRequest{Title: "Go dev", CompanyName: "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)
	var job domain.Job
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &job))
	assert.Equal(t, int64(9), job.ID)
}

func TestGetJobNotFound(t *testing.T) {
	a := newAPI(t)
	a.jobs.On("GetJob", mock.Anything, int64(42)).Return(nil, apperror.NotFound("Job not found"))

	w := a.do(http.MethodGet, "/v1/jobs/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/v1/jobs/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyConflict(t *testing.T) {
	a := newAPI(t)
	a.apps.On("Apply", mock.Anything, "cand", int64(1), (*string)(nil)).
		Return(nil, apperror.Conflict(apperror.CodeAlreadyApplied, "You have already applied to this job"))

	w := a.do(http.MethodPost, "/v1/applications", candidateToken, map[string]int64{"job_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeAlreadyApplied, decode(t, w).Error.Code)

	w = a.do(http.MethodPost, "/v1/applications", candidateToken, map[string]int64{"job_id": 0})
	assert.Equal(t, apperror.CodeValidation, decode(t, w).Error.Code)
}

func TestExportApplicants(t *testing.T) {
	a := newAPI(t)
	a.apps.On("ExportByJob", mock.Anything, int64(3), "rec").Return([]byte("PK-xlsx"), nil)

	w := a.do(http.MethodGet, "/v1/jobs/3/applications/export", recruiterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "job_3_applicants.xlsx")
	assert.Equal(t, "PK-xlsx", w.Body.String())
}

func TestExportForbidden(t *testing.T) {
	a := newAPI(t)
	a.apps.On("ExportByJob", mock.Anything, int64(3), "cand").
		Return(nil, apperror.Forbidden("This action requires a recruiter account"))

	w := a.do(http.MethodGet, "/v1/jobs/3/applications/export", candidateToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperror.CodeForbidden, decode(t, w).Error.Code)
}

func TestProfileMissingIsNull(t *testing.T) {
	a := newAPI(t)
	a.profiles.On("Get", mock.Anything, "cand").Return(nil, nil)
	a.profiles.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	for _, path := range []string{"/v1/profile/me", "/v1/profile/ghost@example.com"} {
		w := a.do(http.MethodGet, path, candidateToken, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"profile":null}`, string(decode(t, w).Data), path)
	}
}

func TestSaveProfilePassesRawBody(t *testing.T) {
	a := newAPI(t)
	saved := &domain.CandidateProfile{UserID: "cand", FirstName: "Ada"}
	a.profiles.On("Save", mock.Anything, "cand", mock.MatchedBy(func(raw json.RawMessage) bool {
		return bytes.Contains(raw, []byte(`"first_name":"Ada"`))
	})).Return(saved, nil)

	w := a.do(http.MethodPost, "/v1/profile/save", candidateToken, map[string]string{"first_name": "Ada"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"first_name":"Ada"`)
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
