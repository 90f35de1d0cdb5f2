package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/config"
	"github.com/yigit/campusportal/internal/pkg/auth"
)

const (
	adminEmail    = "admin@campus.test"
	adminPassword = "admin-secret"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.BcryptCost = 4
	os.Exit(m.Run())
}

type envelope[T any] struct {
	Data  T                `json:"data"`
	Error *dto.ErrorDetail `json:"error"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
}

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = "8080"
	cfg.Server.Mode = "test"
	cfg.Server.StoragePath = t.TempDir()
	cfg.Server.MaxUploadMB = 1
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "integration-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "campusportal-test"
	cfg.Revalidate.Timeout = "1s"
	cfg.Uploads.MaxImageWidth = 800
	cfg.Uploads.MaxImageHeight = 800
	cfg.Uploads.JPEGQuality = 80
	cfg.Seed.AdminEmail = adminEmail
	cfg.Seed.AdminName = "Portal Admin"
	cfg.Seed.AdminPassword = adminPassword
	return cfg
}

func newAPI(t *testing.T) *api {
	t.Helper()
	cfg := testConfig(t)
	lgr := zerolog.Nop()

	store, closeStore, err := OpenStore(cfg, lgr)
	require.NoError(t, err)
	t.Cleanup(closeStore)

	deps, err := BuildDependencies(cfg, store, lgr)
	require.NoError(t, err)
	SeedDefaults(context.Background(), cfg, deps)

	return &api{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (a *api) do(method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) json(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	return a.do(method, path, token, "application/json", r)
}

func (a *api) form(path, token string, values url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, token, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (a *api) signIn(email, password string) string {
	w := a.json(http.MethodPost, "/api/v1/auth/signin", "", dto.SignInRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.AuthResponse](a.t, w).Data.Token.AccessToken
}

func (a *api) signUp(email, name string) (string, string) {
	w := a.json(http.MethodPost, "/api/v1/auth/signup", "", dto.SignUpRequest{Email: email, Password: "student-pass", FullName: name})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[dto.AuthResponse](a.t, w).Data
	return resp.User.ID, resp.Token.AccessToken
}

func (a *api) createCourse(token, code string) int64 {
	w := a.form("/api/v1/courses", token, url.Values{"title": {"Course " + code}, "courseCode": {code}, "credits": {"3"}})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Course](a.t, w).Data.ID
}

func (a *api) assign(token, studentID string, courseID int64) int64 {
	w := a.json(http.MethodPost, "/api/v1/enrollments", token, map[string]interface{}{
		"studentId": studentID, "courseId": courseID, "enrollmentDate": "2024-09-01",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.StudentCourse](a.t, w).Data.ID
}

func TestRouter_Infrastructure(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/ping", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = a.do(http.MethodGet, "/api/v1/nowhere", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decode[any](t, w).Error.Code)

	w = a.do(http.MethodGet, "/api/v1/news", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Gate(t *testing.T) {
	a := newAPI(t)
	_, studentToken := a.signUp("student@campus.test", "Deniz Yilmaz")

	course := url.Values{"title": {"Algebra"}, "courseCode": {"MATH101"}, "credits": {"4"}}

	w := a.form("/api/v1/courses", "", course)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.form("/api/v1/courses", studentToken, course)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodGet, "/api/v1/courses", studentToken, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/v1/auth/me", studentToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleStudent, decode[models.Profile](t, w).Data.Role)
}

func TestRouter_CourseLifecycle(t *testing.T) {
	a := newAPI(t)
	admin := a.signIn(adminEmail, adminPassword)
	studentID, _ := a.signUp("student@campus.test", "Deniz Yilmaz")

	w := a.form("/api/v1/courses", admin, url.Values{"title": {"Algebra"}, "credits": {"four"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title, course code, and credits are required", decode[any](t, w).Error.Message)

	courseID := a.createCourse(admin, "MATH101")

	w = a.form("/api/v1/courses", admin, url.Values{"title": {"Other"}, "courseCode": {"MATH101"}, "credits": {"2"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	// the path id wins over the body id
	w = a.json(http.MethodPut, fmt.Sprintf("/api/v1/courses/%d", courseID), admin, map[string]interface{}{
		"id": 999, "title": "Linear Algebra", "courseCode": "MATH101", "credits": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 5, decode[models.Course](t, w).Data.Credits)

	a.assign(admin, studentID, courseID)
	w = a.json(http.MethodPost, "/api/v1/enrollments", admin, map[string]interface{}{
		"studentId": studentID, "courseId": courseID, "enrollmentDate": "2024-09-02",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Student is already enrolled in this course", decode[any](t, w).Error.Message)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", courseID), admin, "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cannot delete course that is assigned to students", decode[any](t, w).Error.Message)

	empty := a.createCourse(admin, "HIST100")
	w = a.do(http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", empty), admin, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", empty), admin, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_WithdrawalFlow(t *testing.T) {
	a := newAPI(t)
	admin := a.signIn(adminEmail, adminPassword)
	studentID, studentToken := a.signUp("student@campus.test", "Deniz Yilmaz")
	otherID, _ := a.signUp("other@campus.test", "Ece Demir")
	courseID := a.createCourse(admin, "CS101")
	a.assign(admin, studentID, courseID)

	request := map[string]interface{}{
		"studentId": studentID, "courseId": courseID, "withdrawalDate": "2024-11-15", "reason": "Schedule conflict",
	}

	w := a.json(http.MethodPost, "/api/v1/withdrawals", studentToken, map[string]interface{}{
		"studentId": otherID, "courseId": courseID, "withdrawalDate": "2024-11-15",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.json(http.MethodPost, "/api/v1/withdrawals", studentToken, request)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	withdrawal := decode[models.Withdrawal](t, w).Data
	assert.Equal(t, models.WithdrawalPending, withdrawal.Status)

	w = a.json(http.MethodPost, "/api/v1/withdrawals", studentToken, request)
	assert.Equal(t, http.StatusConflict, w.Code)

	statusPath := fmt.Sprintf("/api/v1/withdrawals/%d/status", withdrawal.ID)
	w = a.json(http.MethodPut, statusPath, studentToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.json(http.MethodPut, statusPath, admin, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.json(http.MethodPut, statusPath, admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.json(http.MethodPut, statusPath, admin, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Withdrawal request has already been processed", decode[any](t, w).Error.Message)

	w = a.do(http.MethodGet, "/api/v1/me/courses", studentToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	courses := decode[[]models.StudentCourse](t, w).Data
	require.Len(t, courses, 1)
	assert.Equal(t, models.EnrollmentWithdrawn, courses[0].Status)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/v1/withdrawals/%d", withdrawal.ID), studentToken, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_BulkWithdrawal(t *testing.T) {
	a := newAPI(t)
	admin := a.signIn(adminEmail, adminPassword)
	courseID := a.createCourse(admin, "PHYS110")

	first, _ := a.signUp("first@campus.test", "Ali Veli")
	second, _ := a.signUp("second@campus.test", "Zeynep Ak")
	e1 := a.assign(admin, first, courseID)
	e2 := a.assign(admin, second, courseID)

	path := fmt.Sprintf("/api/v1/courses/%d/bulk-withdrawals", courseID)

	w := a.form(path, admin, url.Values{"studentIds": {"[]"}, "withdrawalDate": {"2024-11-20"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No students selected", decode[any](t, w).Error.Message)

	w = a.form(path, admin, url.Values{
		"studentIds":     {fmt.Sprintf("[%d,%d,999999]", e1, e2)},
		"withdrawalDate": {"2024-11-20"},
		"reason":         {"Course cancelled"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[dto.BulkWithdrawalResponse](t, w).Data.Results
	assert.Equal(t, []int64{e1, e2}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, int64(999999), result.Failed[0].ID)
	assert.Equal(t, "Unknown", result.Failed[0].Name)

	// already withdrawn rows are reported, not re-processed
	w = a.json(http.MethodPost, path, admin, map[string]interface{}{"studentIds": []int64{e1}, "withdrawalDate": "2024-11-21"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result = decode[dto.BulkWithdrawalResponse](t, w).Data.Results
	assert.Empty(t, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "Student is not actively enrolled in this course", result.Failed[0].Error)
}

func TestRouter_RemoveStudentLegacyRoute(t *testing.T) {
	a := newAPI(t)
	admin := a.signIn(adminEmail, adminPassword)
	studentID, studentToken := a.signUp("student@campus.test", "Deniz Yilmaz")
	courseID := a.createCourse(admin, "ECON100")
	enrollmentID := a.assign(admin, studentID, courseID)

	const path = "/api/courses/remove-student"

	w := a.json(http.MethodPost, path, "", map[string]interface{}{"enrollmentId": enrollmentID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.json(http.MethodPost, path, studentToken, map[string]interface{}{"enrollmentId": enrollmentID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.json(http.MethodPost, path, admin, map[string]interface{}{"studentId": studentID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Student course ID is required", decode[any](t, w).Error.Message)

	w = a.json(http.MethodPost, path, admin, map[string]interface{}{"studentCourseId": enrollmentID, "studentId": studentID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ack dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.True(t, ack.Success)

	w = a.json(http.MethodPost, path, admin, map[string]interface{}{"enrollmentId": enrollmentID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ContentAndFinance(t *testing.T) {
	a := newAPI(t)
	admin := a.signIn(adminEmail, adminPassword)
	studentID, studentToken := a.signUp("student@campus.test", "Deniz Yilmaz")

	w := a.form("/api/v1/news", admin, url.Values{"title": {"Semester opens"}, "content": {"Classes begin Monday."}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	newsID := decode[models.News](t, w).Data.ID

	w = a.do(http.MethodGet, fmt.Sprintf("/api/v1/news/%d", newsID), "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, "/api/v1/news/abc", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.form("/api/v1/reports", admin, url.Values{"title": {"Q1"}, "reportDate": {"2024-03-31"}})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.form("/api/v1/scholarships", admin, url.Values{
		"studentId": {studentID}, "name": {"Merit"}, "amount": {"1500.50"},
		"startDate": {"2024-09-01"}, "endDate": {"2025-06-30"}, "status": {"active"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	scholarshipID := decode[models.Scholarship](t, w).Data.ID

	w = a.do(http.MethodGet, "/api/v1/me/scholarships", studentToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Scholarship](t, w).Data, 1)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/v1/scholarships/%d", scholarshipID), admin, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, studentID, decode[dto.SuccessResponse](t, w).Data.StudentID)

	w = a.do(http.MethodGet, "/api/v1/users/"+studentID, admin, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Deniz Yilmaz", decode[dto.UserDetailResponse](t, w).Data.Profile.FullName)

	w = a.do(http.MethodGet, "/api/v1/users?role=student", admin, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[dto.UserListResponse](t, w).Data.Pagination.TotalItems)

	w = a.do(http.MethodGet, "/api/v1/users?role=dean", admin, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
