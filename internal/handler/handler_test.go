package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/auth"
	"github.com/sahildeshmukh45/tl/internal/capture"
	"github.com/sahildeshmukh45/tl/internal/config"
	"github.com/sahildeshmukh45/tl/internal/dashboard"
	"github.com/sahildeshmukh45/tl/internal/db"
	"github.com/sahildeshmukh45/tl/internal/repos"
	"github.com/sahildeshmukh45/tl/internal/tracking"
	"github.com/sahildeshmukh45/tl/internal/user"
)

type stubGrabber struct{}

func (stubGrabber) Capture() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 320, 240)), nil
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, _ image.Image, name string) (*capture.UploadResult, error) {
	return &capture.UploadResult{
		URL:      "https://cdn.example.com/" + name,
		PublicID: "teamlogger/" + name,
		Bytes:    1024,
	}, nil
}

func (stubUploader) Delete(context.Context, string) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	log := zaptest.NewLogger(t)
	cfg := &config.Config{
		ScreenshotEnabled:  true,
		ScreenshotInterval: time.Hour,
		ScreenshotQuality:  0.8,
	}

	usersRepo := repos.NewUsersRepo(gdb)
	entriesRepo := repos.NewTimeEntriesRepo(gdb)
	projectsRepo := repos.NewProjectsRepo(gdb)
	tasksRepo := repos.NewTasksRepo(gdb)
	shotsRepo := repos.NewScreenshotsRepo(gdb)

	captureSvc := capture.New(log, cfg, stubGrabber{}, stubUploader{}, shotsRepo)
	t.Cleanup(captureSvc.Shutdown)
	trackingSvc := tracking.New(log, entriesRepo, usersRepo, projectsRepo, tasksRepo, captureSvc, nil)
	userSvc := user.New(log, usersRepo, nil)
	dashboardSvc := dashboard.New(usersRepo, entriesRepo, projectsRepo, tasksRepo, shotsRepo)
	tokens := auth.NewTokenProvider("test-secret", time.Hour)

	h := New(log, validator.New(), trackingSvc, captureSvc, userSvc, dashboardSvc,
		projectsRepo, tasksRepo, tokens)

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(bytes.TrimSpace(raw)) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":  "jdoe",
		"email":     "jdoe@example.com",
		"password":  "hunter2!!",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "jdoe",
		"password": "hunter2!!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "jd",
		"email":    "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicate(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":  "jdoe",
		"email":     "second@example.com",
		"password":  "hunter2!!",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "jdoe",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/time-tracking/current",
		"/api/users/me",
		"/api/dashboard/stats",
	} {
		resp, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestPunchFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	// Not punched in yet: current is null, punch-out refuses.
	resp, body := doJSON(t, srv, http.MethodGet, "/api/time-tracking/current", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body)

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-out", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-in", token,
		map[string]any{"notes": "morning"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["isActive"])

	// Double punch-in conflicts.
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-in", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, srv, http.MethodGet, "/api/time-tracking/current", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body)
	assert.Equal(t, true, body["isActive"])

	resp, body = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-out", token,
		map[string]any{"notes": "done"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["isActive"])
	assert.Contains(t, body["notes"], "morning")
	assert.Contains(t, body["notes"], "done")
}

func TestLunchAndBreakEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/time-tracking/lunch/start", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "no active entry")

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/lunch/start", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/lunch/start", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/lunch/end", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/break/start", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/break/end", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestManualEntryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	// punchOutTime must come after punchInTime.
	resp, _ := doJSON(t, srv, http.MethodPost, "/api/time-tracking/manual", token, map[string]any{
		"userId":       1,
		"punchInTime":  start.Format(time.RFC3339),
		"punchOutTime": start.Add(-time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Reversed break interval would yield negative break hours.
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/manual", token, map[string]any{
		"userId":         1,
		"punchInTime":    start.Format(time.RFC3339),
		"punchOutTime":   start.Add(8 * time.Hour).Format(time.RFC3339),
		"breakStartTime": start.Add(2 * time.Hour).Format(time.RFC3339),
		"breakEndTime":   start.Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, srv, http.MethodPost, "/api/time-tracking/manual", token, map[string]any{
		"userId":       1,
		"punchInTime":  start.Format(time.RFC3339),
		"punchOutTime": start.Add(8 * time.Hour).Format(time.RFC3339),
		"notes":        "forgot to punch in",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["isManualEntry"])
	assert.InDelta(t, 8.0, body["totalWorkHours"], 1e-9)
}

func TestScreenshotCaptureEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/screenshots/capture", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "requires an active entry")

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, srv, http.MethodPost, "/api/screenshots/capture", token,
		map[string]any{"notes": "spot check"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["isManual"])
	assert.Contains(t, body["fileName"], "manual_screenshot_")

	shotID := int64(body["id"].(float64))
	resp, body = doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/api/screenshots/%d/approve", shotID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isApproved"])

	resp, _ = doJSON(t, srv, http.MethodDelete,
		fmt.Sprintf("/api/screenshots/%d", shotID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestProjectAndTaskEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, body := doJSON(t, srv, http.MethodPost, "/api/projects/", token, map[string]any{
		"name":       "Apollo",
		"clientName": "ACME",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := int64(body["id"].(float64))

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/projects/", token, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "name too short")

	resp, body = doJSON(t, srv, http.MethodPost, "/api/tasks/", token, map[string]any{
		"title":     "Design review",
		"projectId": projectID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int64(body["id"].(float64))

	resp, _ = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", projectID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/tasks/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Punch in against the created refs.
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-in", token, map[string]any{
		"projectId": projectID,
		"taskId":    taskID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDashboardEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, body := doJSON(t, srv, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["totalUsers"])
	assert.EqualValues(t, 1, body["onlineUsers"])

	resp, body = doJSON(t, srv, http.MethodGet, "/api/dashboard/user-stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "weeklyHours")
	assert.Contains(t, body, "screenshotsThisWeek")

	resp, body = doJSON(t, srv, http.MethodGet, "/api/dashboard/team-stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["totalTeamMembers"])
	assert.Contains(t, body, "productivityByUser")

	resp, body = doJSON(t, srv, http.MethodGet, "/api/dashboard/project-stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "averageProjectProgress")

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/dashboard/recent-activities", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, srv, http.MethodGet, "/api/dashboard/productivity-chart?period=month", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "month", body["period"])

	resp, body = doJSON(t, srv, http.MethodGet, "/api/dashboard/online-users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["onlineUsers"])
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, body := doJSON(t, srv, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jdoe", body["username"])

	resp, body = doJSON(t, srv, http.MethodPut, "/api/users/1", token, map[string]any{
		"firstName": "Janet",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Janet", body["firstName"])

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/users/change-password", token, map[string]any{
		"currentPassword": "hunter2!!",
		"newPassword":     "brandnewpass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "jdoe",
		"password": "brandnewpass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEntriesAndHourQueries(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-in", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/time-tracking/punch-out", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := srv.Client().Get(srv.URL + "/api/time-tracking/entries?startDate=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "still behind auth")

	resp2, body := doJSON(t, srv, http.MethodGet, "/api/time-tracking/total-hours", token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, body, "totalHours")

	resp2, body = doJSON(t, srv, http.MethodGet, "/api/time-tracking/overtime-hours", token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, body, "overtimeHours")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/time-tracking/entries?startDate=bogus", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp3, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}
