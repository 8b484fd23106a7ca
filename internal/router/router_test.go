package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estate_listing_v1/internal/controller"
	"estate_listing_v1/internal/middleware"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/repository"
	"estate_listing_v1/internal/service"
	"estate_listing_v1/internal/task"
	"estate_listing_v1/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func setupServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	log := zap.NewNop()

	db, err := database.OpenInMemory(model.All()...)
	require.NoError(t, err)
	require.NoError(t, middleware.RegisterAuditCallbacks(db))

	uploadDir := t.TempDir()
	storage, err := service.NewStorageService(service.StorageConfig{
		Provider:     "local",
		BasePath:     uploadDir,
		PublicURL:    "http://localhost:8080/uploads",
		MaxFiles:     5,
		MaxFileBytes: 1 << 20,
	}, log)
	require.NoError(t, err)

	uow := repository.NewListingUnitOfWork(db)
	reports := service.NewReportService(uow)
	tasks := task.NewTaskManager(
		task.TaskManagerDeps{Reports: reports},
		task.TaskManagerConfig{VerificationReportCron: "@every 1h"},
		log,
	)
	ctl := Controllers{
		Agency:  controller.NewAgencyController(service.NewAgencyService(uow, log), log),
		Agent:   controller.NewAgentController(service.NewAgentService(uow, log), log),
		Project: controller.NewProjectController(service.NewProjectService(uow, log), log),
		Upload:  controller.NewUploadController(storage, log),
		User:    controller.NewUserController(service.NewUserService(uow.Users, log), log),
		Report:  controller.NewReportController(reports, tasks, log),
	}
	if !opts.Session.Enabled() {
		opts.Session = testSession
	}
	opts.UploadDir = uploadDir
	return &testServer{engine: NewEngine(ctl, opts, log), db: db}
}

func (s *testServer) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

var testSession = middleware.SessionConfig{Secret: "s3cret", Issuer: "estate-listing"}

// bearer 签发测试会话，返回 Authorization 头
func bearer(t *testing.T, cfg middleware.SessionConfig, userID, role string) []string {
	t.Helper()
	token, err := middleware.IssueToken(cfg, middleware.Session{UserID: userID, Role: role}, time.Hour)
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + token}
}

func (s *testServer) addUser(t *testing.T, id string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/users", `{"id":"`+id+`","email":"`+id+`@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

const aceRealty = `{"id":"u1","name":"Ace Realty","officeAddress":"123 Main","phoneNumber":"555-1",
"email":"a@ace.com","servicesOffered":["BUY_SELL"],"propertyTypes":["HOME"],"propertyDetails":["House"],
"areasCovered":["KARACHI"],"totalAgents":"2","totalListings":"5"}`

// ==================== Agency ====================

func TestAgency_CreateAndList(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")

	w := s.do(t, http.MethodPost, "/api/agency", aceRealty)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[struct {
		Message string       `json:"message"`
		Agency  model.Agency `json:"agency"`
	}](t, w)
	assert.Equal(t, "Ace Realty", resp.Agency.Name)
	assert.Equal(t, model.VerificationPending, resp.Agency.VerificationStatus)
	assert.Equal(t, 2, resp.Agency.TotalAgents)
	assert.Equal(t, 5, resp.Agency.TotalListings)
	assert.Equal(t, "u1", resp.Agency.UserID)

	list := decode[[]model.Agency](t, s.do(t, http.MethodGet, "/api/agency", ""))
	require.Len(t, list, 1)

	detail := s.do(t, http.MethodGet, "/api/agency/"+jsonNumber(resp.Agency.ID), "")
	assert.Equal(t, http.StatusOK, detail.Code)
}

func TestAgency_DuplicateEmailFromOtherUser(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")
	s.addUser(t, "u2")

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/agency", aceRealty).Code)

	w := s.do(t, http.MethodPost, "/api/agency", strings.Replace(aceRealty, `"id":"u1"`, `"id":"u2"`, 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, strings.ToLower(w.Body.String()), "email already in use")

	list := decode[[]model.Agency](t, s.do(t, http.MethodGet, "/api/agency", ""))
	assert.Len(t, list, 1)
}

func TestAgency_Preconditions(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantText string
	}{
		{"missing name", strings.Replace(aceRealty, `"name":"Ace Realty",`, "", 1), http.StatusBadRequest, "missing required fields"},
		{"missing owner", strings.Replace(aceRealty, `"id":"u1",`, "", 1), http.StatusBadRequest, "user id is required"},
		{"unknown owner", strings.Replace(aceRealty, `"id":"u1"`, `"id":"ghost"`, 1), http.StatusNotFound, "user not found"},
		{"unknown enum", strings.Replace(aceRealty, `["HOME"]`, `["CASTLE"]`, 1), http.StatusBadRequest, "propertyTypes[0]"},
		{"non numeric", strings.Replace(aceRealty, `"totalAgents":"2"`, `"totalAgents":"two"`, 1), http.StatusBadRequest, "must be a number"},
		{"fractional count", strings.Replace(aceRealty, `"totalAgents":"2"`, `"totalAgents":"2.5"`, 1), http.StatusBadRequest, "must be a whole number"},
		{"count out of range", strings.Replace(aceRealty, `"totalAgents":"2"`, `"totalAgents":99999999999999999999`, 1), http.StatusBadRequest, "must be a whole number"},
		{"malformed json", `{"id":`, http.StatusBadRequest, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/agency", tt.body)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tt.wantText)
		})
	}

	// 失败请求不落库
	list := decode[[]model.Agency](t, s.do(t, http.MethodGet, "/api/agency", ""))
	assert.Empty(t, list)
}

func TestAgency_ExponentNumbers(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")

	body := strings.Replace(aceRealty, `"totalAgents":"2"`, `"totalAgents":1e1`, 1)
	w := s.do(t, http.MethodPost, "/api/agency", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[struct {
		Agency model.Agency `json:"agency"`
	}](t, w)
	assert.Equal(t, 10, resp.Agency.TotalAgents)
}

func TestAgency_Verification(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/agency", aceRealty).Code)

	admin := bearer(t, testSession, "reviewer_1", middleware.RoleAdmin)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPatch, "/api/agency/1/verification", `{"status":"VERIFIED"}`, admin...).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPatch, "/api/agency/1/verification", `{"status":"DONE"}`, admin...).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/api/agency/99/verification", `{"status":"VERIFIED"}`, admin...).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/agency/abc", "").Code)

	report := s.do(t, http.MethodGet, "/api/reports/verification", "", admin...)
	require.Equal(t, http.StatusOK, report.Code)
	assert.Contains(t, report.Body.String(), `"VERIFIED":1`)

	// 审核人由审计回调写入
	got := decode[model.Agency](t, s.do(t, http.MethodGet, "/api/agency/1", ""))
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, "reviewer_1", *got.ReviewedBy)
}

func TestVerification_RequiresAdmin(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/agency", aceRealty).Code)

	owner := bearer(t, testSession, "u1", "")
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		header   []string
		wantCode int
	}{
		{"anonymous agency", http.MethodPatch, "/api/agency/1/verification", `{"status":"VERIFIED"}`, nil, http.StatusUnauthorized},
		{"owner agency", http.MethodPatch, "/api/agency/1/verification", `{"status":"VERIFIED"}`, owner, http.StatusForbidden},
		{"anonymous agent", http.MethodPatch, "/api/agents/1/verification", `{"status":"VERIFIED"}`, nil, http.StatusUnauthorized},
		{"anonymous project", http.MethodPatch, "/api/projects/1/verification", `{"status":"VERIFIED"}`, nil, http.StatusUnauthorized},
		{"anonymous report", http.MethodGet, "/api/reports/verification", "", nil, http.StatusUnauthorized},
		{"owner report run", http.MethodPost, "/api/reports/verification/run", "", owner, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body, tt.header...)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}

	// 状态未被修改
	got := decode[model.Agency](t, s.do(t, http.MethodGet, "/api/agency/1", ""))
	assert.Equal(t, model.VerificationPending, got.VerificationStatus)
	assert.Nil(t, got.ReviewedBy)
}

func TestReports_RunVerification(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/agency", aceRealty).Code)

	w := s.do(t, http.MethodPost, "/api/reports/verification/run", "", bearer(t, testSession, "reviewer_1", middleware.RoleAdmin)...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"pending":1}`, w.Body.String())
}

// ==================== Session ====================

func TestSession_IsAuthoritative(t *testing.T) {
	cfg := middleware.SessionConfig{Secret: "s3cret", Issuer: "estate-listing"}
	s := setupServer(t, Options{Session: cfg})
	s.addUser(t, "u1")
	s.addUser(t, "kp_7")

	auth := bearer(t, cfg, "kp_7", "")

	// body id 与会话不一致
	w := s.do(t, http.MethodPost, "/api/agency", aceRealty, auth...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 省略 body id，使用会话用户
	w = s.do(t, http.MethodPost, "/api/agency", strings.Replace(aceRealty, `"id":"u1",`, "", 1), auth...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"userId":"kp_7"`)
}

// ==================== Agent / Project ====================

func TestAgent_CreateWithTextTestimonials(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")

	body := `{"id":"u1","fullName":"Ali Khan","agentType":"Independent","experience":"5 years",
"specialization":["RESIDENTIAL"],"phoneNumber":"03001234567","email":"ali@example.com",
"areasCovered":["clifton"],"servicesOffered":["RENTAL"],"instagram":"https://instagram.com/ali",
"testimonials":"Great agent\n\n Honest ","totalListings":12,"overallRating":"4"}`

	w := s.do(t, http.MethodPost, "/api/agents", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	agents := decode[[]model.Agent](t, s.do(t, http.MethodGet, "/api/agents", ""))
	require.Len(t, agents, 1)
	assert.Equal(t, []string{"Great agent", "Honest"}, []string(agents[0].Testimonials))
	assert.Equal(t, 12, agents[0].TotalListings)
	require.NotNil(t, agents[0].SocialMediaLinks)
	assert.Equal(t, "https://instagram.com/ali", *agents[0].SocialMediaLinks.Instagram)
}

func TestUsers_SyncAndGet(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u7")

	w := s.do(t, http.MethodGet, "/api/users/u7", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "u7@example.com", decode[model.User](t, w).Email)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/users/ghost", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/users", `{"email":"x@example.com"}`).Code)
}

func TestProjects_EmptyList(t *testing.T) {
	s := setupServer(t, Options{})
	w := s.do(t, http.MethodGet, "/api/projects", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProject_CreateWithChildren(t *testing.T) {
	s := setupServer(t, Options{})
	s.addUser(t, "u1")

	body := `{"id":"u1","name":"Skyline Towers","developerName":"Zameen Developers","projectType":"MIXED_USE",
"projectStatus":"UPCOMING","city":"Lahore","area":"Gulberg","availableUnits":["APARTMENTS"],
"priceRange":{"minPrice":"100","maxPrice":250.5},"nearbyFacilities":"Mall\nHospital",
"authorizedAgents":[{"email":"sales@skyline.pk","phone":"042-1"}],
"images":["https://cdn.test/a.jpg","https://cdn.test/b.jpg"]}`

	w := s.do(t, http.MethodPost, "/api/projects", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	projects := decode[[]model.Project](t, s.do(t, http.MethodGet, "/api/projects", ""))
	require.Len(t, projects, 1)
	p := projects[0]
	assert.Equal(t, []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg"}, p.ImageURLs())
	require.NotNil(t, p.PriceRange)
	assert.Equal(t, 250.5, p.PriceRange.MaxPrice)
	assert.Len(t, p.AuthorizedAgents, 1)
	assert.Equal(t, []string{"Mall", "Hospital"}, []string(p.NearbyFacilities))
}

// ==================== Upload ====================

func multipartBody(t *testing.T, files map[string][]byte, order []string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, name := range order {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestUpload_ReturnsURLsInOrder(t *testing.T) {
	s := setupServer(t, Options{})
	png := []byte("\x89PNG\r\n\x1a\nDATA")

	body, contentType := multipartBody(t, map[string][]byte{"front.png": png, "back.png": png}, []string{"front.png", "back.png"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		URLs []string `json:"urls"`
	}](t, w)
	require.Len(t, resp.URLs, 2)
	for _, u := range resp.URLs {
		assert.True(t, strings.HasPrefix(u, "http://localhost:8080/uploads/"))
	}

	// 上传后的文件可通过 /uploads 访问
	path := strings.TrimPrefix(resp.URLs[0], "http://localhost:8080")
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, "").Code)
}

func TestUpload_NoFiles(t *testing.T) {
	s := setupServer(t, Options{})
	body, contentType := multipartBody(t, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid upload")
}

func TestUpload_BodyTooLarge(t *testing.T) {
	s := setupServer(t, Options{})

	// 上限为 5 个文件 × 1MB + 1MB 余量
	big := bytes.Repeat([]byte{'x'}, 7<<20)
	body, contentType := multipartBody(t, map[string][]byte{"huge.png": big}, []string{"huge.png"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "request body too large")
}

func TestUpload_Throttled(t *testing.T) {
	s := setupServer(t, Options{UploadThrottle: middleware.NewSubmitLimiter(time.Hour, 1)})
	png := []byte("\x89PNG\r\n\x1a\nDATA")

	upload := func() int {
		body, contentType := multipartBody(t, map[string][]byte{"a.png": png}, []string{"a.png"})
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, upload())
	assert.Equal(t, http.StatusTooManyRequests, upload())
}

// ==================== Throttle ====================

func TestSubmitThrottle_Applies(t *testing.T) {
	s := setupServer(t, Options{Throttle: middleware.NewSubmitLimiter(time.Hour, 1)})
	s.addUser(t, "u1")

	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/agency", aceRealty).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodPost, "/api/projects", `{}`).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/agency", "").Code)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
