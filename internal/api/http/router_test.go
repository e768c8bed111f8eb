package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/api/http/handlers"
	"github.com/Behnamfe76/officedesk/internal/auth"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/identity"
	"github.com/Behnamfe76/officedesk/internal/observability"
	"github.com/Behnamfe76/officedesk/internal/report"
	"github.com/Behnamfe76/officedesk/internal/repository/memstore"
	"github.com/Behnamfe76/officedesk/internal/service"
)

const testRoster = `{"users": [
	{"username": "alice", "password": "alice-pw", "full_name": "Alice Adams", "department": "Sales", "employee_number": "E100"},
	{"username": "root", "password": "root-pw", "full_name": "Office Admin", "department": "Admin", "is_admin": true}
]}`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	rosterPath := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(rosterPath, []byte(testRoster), 0o600))

	logger := zap.NewNop()
	store := memstore.New().Store()
	metrics := observability.NewMetrics()
	deps := service.Dependencies{Store: store, Dispatcher: events.NewInMemoryDispatcher(logger), Logger: logger}
	provider := identity.NewRosterProvider(rosterPath, logger)
	tokens := auth.NewTokenManager("router-test", 10)

	leaves := service.NewLeaveService(deps, provider)
	bookings := service.NewBookingService(deps)
	notifications := service.NewNotificationService(deps, nil)
	notifications.RegisterHandlers()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("officedesk", "test", nil, nil, metrics),
		Auth:           handlers.NewAuthHandler(service.NewAuthService(provider, tokens, logger), leaves, notifications),
		Leave:          handlers.NewLeaveHandler(leaves),
		Bookings:       handlers.NewBookingHandler(bookings),
		Fleet:          handlers.NewFleetHandler(service.NewFleetService(deps, bookings), bookings),
		Tickets:        handlers.NewTicketsHandler(service.NewTicketService(deps)),
		HelpdeskAdmin:  handlers.NewHelpdeskAdminHandler(service.NewHelpdeskAdminService(deps)),
		Notifications:  handlers.NewNotificationsHandler(notifications),
		Reports:        handlers.NewReportsHandler(report.NewService(report.NewStoreProjection(store), logger)),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, body := call(t, app, fiber.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, fiber.StatusOK, status, body)
	return body["data"].(map[string]any)["token"].(string)
}

func errorCode(body map[string]any) string {
	errBody, ok := body["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}

func TestRouter_Guards(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, body := call(t, app, fiber.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, body = call(t, app, fiber.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	alice := login(t, app, "alice", "alice-pw")
	status, body = call(t, app, fiber.MethodGet, "/api/auth/me", alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	me := body["data"].(map[string]any)
	assert.Equal(t, "alice", me["user"].(map[string]any)["username"])
	assert.Equal(t, false, me["is_helpdesk_staff"])

	status, body = call(t, app, fiber.MethodGet, "/api/admin/leave", alice, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	status, body = call(t, app, fiber.MethodGet, "/no-such-page", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	status, body = call(t, app, fiber.MethodGet, "/api/leave/abc", alice, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestRouter_LeaveApprovalFlow(t *testing.T) {
	app := newTestApp(t)
	alice := login(t, app, "alice", "alice-pw")
	root := login(t, app, "root", "root-pw")

	status, body := call(t, app, fiber.MethodPost, "/api/leave", alice, map[string]string{
		"reason_en":          "Family visit",
		"destination_en":     "Dubai",
		"manager_name":       "Mona Manager",
		"departure_datetime": "2030-01-05T08:00",
		"return_datetime":    "2030-01-07T17:00",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	leave := body["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(leave["request_number"].(string), "LR-"))
	assert.Equal(t, "draft", leave["status"])
	id := int64(leave["id"].(float64))

	status, body = call(t, app, fiber.MethodPost, fmt.Sprintf("/api/admin/leave/%d/status", id), root, map[string]string{"status": "approved"})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "approved", body["data"].(map[string]any)["status"])

	status, body = call(t, app, fiber.MethodGet, "/api/notifications/unread-count", alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	// approved requests are no longer editable
	status, body = call(t, app, fiber.MethodPut, fmt.Sprintf("/api/leave/%d", id), alice, map[string]string{
		"reason_en":          "Changed plans",
		"destination_en":     "Muscat",
		"manager_name":       "Mona Manager",
		"departure_datetime": "2030-01-05T08:00",
		"return_datetime":    "2030-01-06T17:00",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INVARIANT_VIOLATION", errorCode(body))

	status, body = call(t, app, fiber.MethodPost, "/api/notifications/read-all", alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["updated"])
}

func TestRouter_ReportExport(t *testing.T) {
	app := newTestApp(t)
	root := login(t, app, "root", "root-pw")

	req := httptest.NewRequest(fiber.MethodGet, "/api/admin/reports/leave/export?status=all", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+root)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="leave-report-`)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	status, body := call(t, app, fiber.MethodGet, "/api/admin/reports/payroll", root, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}
