package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/api/middleware"
	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/jwt"
	"tec-planning/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	signupReq    *dto.SignupRequest
	signupResult *dto.AuthResponse
	signupErr    error
	loginResult  *dto.AuthResponse
	loginErr     error
	logoutClaims *jwt.Claims
	logoutErr    error
}

func (m *mockAuthService) Signup(_ context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	m.signupReq = req
	return m.signupResult, m.signupErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, claims *jwt.Claims) error {
	m.logoutClaims = claims
	return m.logoutErr
}
func (m *mockAuthService) Authenticate(_ context.Context, _ string) (*model.User, *jwt.Claims, error) {
	return nil, nil, service.ErrTokenInvalid
}

// ── Mock ProgramService ──

type mockProgramService struct {
	listResult     []dto.ProgramResponse
	listErr        error
	getResult      *dto.ProgramDetailResponse
	getErr         error
	sectionsResult []dto.SectionResponse
	sectionsErr    error
	gotCode        string
	gotTerm        string
}

func (m *mockProgramService) List(_ context.Context) ([]dto.ProgramResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockProgramService) GetByCode(_ context.Context, code string) (*dto.ProgramDetailResponse, error) {
	m.gotCode = code
	return m.getResult, m.getErr
}
func (m *mockProgramService) ListSections(_ context.Context, code, term string) ([]dto.SectionResponse, error) {
	m.gotCode, m.gotTerm = code, term
	return m.sectionsResult, m.sectionsErr
}

// ── Mock UserService ──

type mockUserService struct {
	updateResult     *dto.UserResponse
	updateErr        error
	statuses         []dto.CourseStatusResponse
	statusesErr      error
	statusErr        error
	gotCourse        string
	gotStatus        string
	curriculum       *dto.CurriculumResponse
	curriculumErr    error
	dashboard        *dto.DashboardResponse
	dashboardErr     error
	schedule         []dto.ScheduleEntryResponse
	scheduleErr      error
	gotUpdateRequest *dto.UpdateProfileRequest
}

func (m *mockUserService) GetProfile(_ context.Context, user *model.User) dto.UserResponse {
	return dto.UserResponse{ID: user.ID, Email: user.Email}
}
func (m *mockUserService) UpdateProfile(_ context.Context, _ *model.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	m.gotUpdateRequest = req
	return m.updateResult, m.updateErr
}
func (m *mockUserService) ListCourseStatuses(_ context.Context, _ *model.User) ([]dto.CourseStatusResponse, error) {
	return m.statuses, m.statusesErr
}
func (m *mockUserService) UpdateCourseStatus(_ context.Context, _ *model.User, code, status string) error {
	m.gotCourse, m.gotStatus = code, status
	return m.statusErr
}
func (m *mockUserService) GetCurriculum(_ context.Context, _ *model.User) (*dto.CurriculumResponse, error) {
	return m.curriculum, m.curriculumErr
}
func (m *mockUserService) GetDashboard(_ context.Context, _ *model.User) (*dto.DashboardResponse, error) {
	return m.dashboard, m.dashboardErr
}
func (m *mockUserService) GetSchedule(_ context.Context, _ *model.User) ([]dto.ScheduleEntryResponse, error) {
	return m.schedule, m.scheduleErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf       *bytes.Buffer
	filename  string
	err       error
	gotFormat string
}

func (m *mockExportService) ExportSchedule(_ context.Context, _ *model.User, format string) (*bytes.Buffer, string, error) {
	m.gotFormat = format
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func testUser() *model.User {
	return &model.User{ID: 7, Email: "ana@tec.ac.cr", Carne: "2024000001"}
}

// asUser stands in for the auth guard
func asUser(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CurrentUserKey, testUser())
		c.Set(middleware.ClaimsKey, &jwt.Claims{})
		handler(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func serve(method, route, target string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, h)
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseMessage(w *httptest.ResponseRecorder) string {
	var body response.ErrorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body.Message
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Signup_Success(t *testing.T) {
	mock := &mockAuthService{signupResult: &dto.AuthResponse{Token: "tok"}}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/signup", "/auth/signup", jsonBody(map[string]string{
		"name": "Ana", "email": "ana@tec.ac.cr", "password": "secret", "programCode": "IC", "carne": "1",
	}), h.Signup)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.signupReq == nil || mock.signupReq.ProgramCode != "IC" {
		t.Errorf("request not forwarded: %+v", mock.signupReq)
	}
	if !strings.Contains(w.Body.String(), `"token":"tok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	tests := []struct {
		name string
		body io.Reader
		want string
	}{
		{
			"some missing",
			jsonBody(map[string]string{"name": "Ana", "password": "x", "carne": ""}),
			"Missing required fields: email, programCode, carne",
		},
		{
			"empty object",
			jsonBody(map[string]string{}),
			"Missing required fields: name, email, password, programCode, carne",
		},
		{
			"not json",
			strings.NewReader("name=Ana"),
			"Missing required fields: name, email, password, programCode, carne",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve("POST", "/auth/signup", "/auth/signup", tt.body, h.Signup)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if got := parseMessage(w); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthHandler_Signup_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrEmailExists, http.StatusConflict},
		{service.ErrCarneExists, http.StatusConflict},
		{service.ErrSignupProgram, http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	body := map[string]string{"name": "A", "email": "a@b.c", "password": "p", "programCode": "X", "carne": "1"}
	for _, tt := range tests {
		h := NewAuthHandler(&mockAuthService{signupErr: tt.err})
		w := serve("POST", "/auth/signup", "/auth/signup", jsonBody(body), h.Signup)
		if w.Code != tt.status {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.status, w.Code)
		}
		if tt.status == http.StatusInternalServerError && strings.Contains(w.Body.String(), "db down") {
			t.Error("internal detail leaked")
		}
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ok := &mockAuthService{loginResult: &dto.AuthResponse{Token: "tok"}}
	w := serve("POST", "/auth/login", "/auth/login",
		jsonBody(dto.LoginRequest{Email: "a@b.c", Password: "p"}), NewAuthHandler(ok).Login)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	bad := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	w = serve("POST", "/auth/login", "/auth/login",
		jsonBody(dto.LoginRequest{Email: "a@b.c", Password: "wrong"}), NewAuthHandler(bad).Login)
	if w.Code != http.StatusUnauthorized || parseMessage(w) != "Invalid credentials" {
		t.Errorf("got %d %q", w.Code, parseMessage(w))
	}

	w = serve("POST", "/auth/login", "/auth/login",
		jsonBody(map[string]string{"email": "a@b.c"}), NewAuthHandler(ok).Login)
	if w.Code != http.StatusBadRequest || parseMessage(w) != "Email and password are required" {
		t.Errorf("got %d %q", w.Code, parseMessage(w))
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/logout", "/auth/logout", nil, asUser(h.Logout))
	if w.Code != http.StatusOK || parseMessage(w) != "Logged out" {
		t.Errorf("got %d %q", w.Code, parseMessage(w))
	}
	if mock.logoutClaims == nil {
		t.Error("claims not forwarded")
	}

	// without the guard
	w = serve("POST", "/auth/logout", "/auth/logout", nil, h.Logout)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ProgramHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProgramHandler_ListPrograms(t *testing.T) {
	mock := &mockProgramService{listResult: []dto.ProgramResponse{{Code: "IC"}, {Code: "ISW"}}}
	w := serve("GET", "/programs", "/programs", nil, NewProgramHandler(mock).ListPrograms)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []dto.ProgramResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || len(got) != 2 {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestProgramHandler_GetProgram(t *testing.T) {
	mock := &mockProgramService{getErr: service.ErrProgramNotFound}
	w := serve("GET", "/programs/:code", "/programs/NOPE", nil, NewProgramHandler(mock).GetProgram)

	if w.Code != http.StatusNotFound || parseMessage(w) != "Program not found" {
		t.Errorf("got %d %q", w.Code, parseMessage(w))
	}
	if mock.gotCode != "NOPE" {
		t.Errorf("code = %q", mock.gotCode)
	}

	mock = &mockProgramService{getResult: &dto.ProgramDetailResponse{Blocks: []dto.BlockResponse{}}}
	w = serve("GET", "/programs/:code", "/programs/IC", nil, NewProgramHandler(mock).GetProgram)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"blocks":[]`) {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

func TestProgramHandler_ListSections(t *testing.T) {
	mock := &mockProgramService{sectionsResult: []dto.SectionResponse{}}
	w := serve("GET", "/programs/:code/sections", "/programs/IC/sections?term=I-2025", nil, NewProgramHandler(mock).ListSections)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.gotCode != "IC" || mock.gotTerm != "I-2025" {
		t.Errorf("forwarded %q %q", mock.gotCode, mock.gotTerm)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_GetProfile(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	w := serve("GET", "/users/me", "/users/me", nil, asUser(h.GetProfile))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ana@tec.ac.cr") {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}

	w = serve("GET", "/users/me", "/users/me", nil, h.GetProfile)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unguarded: expected 401, got %d", w.Code)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	mock := &mockUserService{updateResult: &dto.UserResponse{Carne: "2"}}
	h := NewUserHandler(mock)

	w := serve("PUT", "/users/me", "/users/me", jsonBody(map[string]string{"carne": "2"}), asUser(h.UpdateProfile))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.gotUpdateRequest == nil || mock.gotUpdateRequest.Carne != "2" {
		t.Errorf("request = %+v", mock.gotUpdateRequest)
	}

	conflict := NewUserHandler(&mockUserService{updateErr: service.ErrCarneExists})
	w = serve("PUT", "/users/me", "/users/me", jsonBody(map[string]string{"carne": "2"}), asUser(conflict.UpdateProfile))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}

	unknown := NewUserHandler(&mockUserService{updateErr: service.ErrUnknownProgram})
	w = serve("PUT", "/users/me", "/users/me", jsonBody(map[string]string{"programCode": "X"}), asUser(unknown.UpdateProfile))
	if w.Code != http.StatusBadRequest || parseMessage(w) != "Program not found" {
		t.Errorf("got %d %q", w.Code, parseMessage(w))
	}
}

func TestUserHandler_UpdateCourseStatus(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock)
	route := "/users/me/course-status/:courseCode"

	w := serve("PUT", route, "/users/me/course-status/IS-101", jsonBody(map[string]string{"status": "approved"}), asUser(h.UpdateCourseStatus))
	if w.Code != http.StatusOK || parseMessage(w) != "Status updated" {
		t.Errorf("got %d %q", w.Code, parseMessage(w))
	}
	if mock.gotCourse != "IS-101" || mock.gotStatus != "approved" {
		t.Errorf("forwarded %q %q", mock.gotCourse, mock.gotStatus)
	}

	tests := []struct {
		err    error
		status int
	}{
		{service.ErrInvalidStatus, http.StatusBadRequest},
		{service.ErrCourseNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		h := NewUserHandler(&mockUserService{statusErr: tt.err})
		w := serve("PUT", route, "/users/me/course-status/IS-101", strings.NewReader("{"), asUser(h.UpdateCourseStatus))
		if w.Code != tt.status {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.status, w.Code)
		}
	}
}

func TestUserHandler_Views(t *testing.T) {
	mock := &mockUserService{
		statuses:   []dto.CourseStatusResponse{{Status: "approved"}},
		curriculum: &dto.CurriculumResponse{Blocks: []dto.CurriculumBlock{}},
		dashboard:  &dto.DashboardResponse{Progress: dto.ProgressResponse{CompletedCredits: 3}},
		schedule:   []dto.ScheduleEntryResponse{{Code: "IC-4301"}},
	}
	h := NewUserHandler(mock)

	tests := []struct {
		path    string
		handler gin.HandlerFunc
		want    string
	}{
		{"/users/me/course-status", h.ListCourseStatuses, `"status":"approved"`},
		{"/users/me/curriculum", h.GetCurriculum, `"blocks":[]`},
		{"/users/me/dashboard", h.GetDashboard, `"completedCredits":3`},
		{"/users/me/schedule", h.GetSchedule, `"code":"IC-4301"`},
	}
	for _, tt := range tests {
		w := serve("GET", tt.path, tt.path, nil, asUser(tt.handler))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), tt.want) {
			t.Errorf("%s: got %d %s", tt.path, w.Code, w.Body.String())
		}
	}
}

func TestUserHandler_GetCurriculum_NoProgram(t *testing.T) {
	h := NewUserHandler(&mockUserService{curriculumErr: service.ErrProgramNotAssigned})
	w := serve("GET", "/users/me/curriculum", "/users/me/curriculum", nil, asUser(h.GetCurriculum))
	if w.Code != http.StatusBadRequest || parseMessage(w) != "Program not assigned" {
		t.Errorf("got %d %q", w.Code, parseMessage(w))
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportSchedule(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR"),
		filename: "horario_1_II-2024.ics",
	}
	h := NewExportHandler(mock)
	route := "/users/me/schedule/export"

	w := serve("GET", route, route, nil, asUser(h.ExportSchedule))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.gotFormat != service.FormatICS {
		t.Errorf("default format = %q", mock.gotFormat)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "horario_1_II-2024.ics") {
		t.Errorf("content disposition = %q", cd)
	}

	w = serve("GET", route, route+"?format=pdf", nil, asUser(h.ExportSchedule))
	if w.Code != http.StatusBadRequest {
		t.Errorf("pdf: expected 400, got %d", w.Code)
	}

	empty := NewExportHandler(&mockExportService{err: service.ErrNoSchedule})
	w = serve("GET", route, route+"?format=xlsx", nil, asUser(empty.ExportSchedule))
	if w.Code != http.StatusNotFound {
		t.Errorf("no schedule: expected 404, got %d", w.Code)
	}
}

func TestExportHandler_FilenameIsPercentEncoded(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR"),
		filename: "horario María II-2024.ics",
	})
	route := "/users/me/schedule/export"

	w := serve("GET", route, route, nil, asUser(h.ExportSchedule))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	want := "attachment; filename*=UTF-8''horario%20Mar%C3%ADa%20II-2024.ics"
	if cd := w.Header().Get("Content-Disposition"); cd != want {
		t.Errorf("content disposition = %q, want %q", cd, want)
	}
}

func TestHealth(t *testing.T) {
	w := serve("GET", "/health", "/health", nil, Health)
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}
