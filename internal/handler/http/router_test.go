package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/notification"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/response"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/cache"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/jwt"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/repository/memory"
	activityService "github.com/mol-coffee/mol-backend-go/internal/service/activity"
	payrollService "github.com/mol-coffee/mol-backend-go/internal/service/payroll"
	profileService "github.com/mol-coffee/mol-backend-go/internal/service/profile"
	rateService "github.com/mol-coffee/mol-backend-go/internal/service/rate"
	shiftService "github.com/mol-coffee/mol-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) QueueNotification(context.Context, notification.CreateNotificationRequest) error {
	return nil
}

func (nopNotifier) QueueBulkNotification(context.Context, []notification.CreateNotificationRequest) error {
	return nil
}

// stubNotifications answers only the calls these tests make.
type stubNotifications struct {
	notification.Service
	unread int
}

func (s *stubNotifications) GetUnreadCount(context.Context, string) (int, error) {
	return s.unread, nil
}

func (s *stubNotifications) GetNotifications(_ context.Context, _ string, page, pageSize int, _ bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{
		Notifications: []notification.NotificationResponse{},
		Total:         45,
		UnreadCount:   s.unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

type testServer struct {
	router  *chi.Mux
	jwt     jwt.Service
	admin   user.Profile
	anh     user.Profile
	barista activity.Activity
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	loc := localtime.Zone(localtime.DefaultOffsetMinutes)
	store := memory.NewStore()

	ts := &testServer{jwt: jwt.NewJWTService("test-secret", time.Minute)}

	var err error
	ts.admin, err = store.Profiles().Create(ctx, user.Profile{FullName: "Quản Lý", Email: "admin@mol.vn", Role: user.RoleAdmin, IsActive: true})
	require.NoError(t, err)
	ts.anh, err = store.Profiles().Create(ctx, user.Profile{FullName: "Anh", Email: "anh@mol.vn", Role: user.RoleEmployee, IsActive: true})
	require.NoError(t, err)
	ts.barista, err = store.Activities().Create(ctx, activity.Activity{Name: "Barista", IsActive: true})
	require.NoError(t, err)
	_, err = store.Rates().Create(ctx, rate.Rate{
		ActivityID:    ts.barista.ID,
		HourlyVND:     25000,
		EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, loc).UTC(),
	})
	require.NoError(t, err)

	noop := cache.Noop{}
	profiles := profileService.NewProfileService(store.Profiles())
	handlers := Handlers{
		Profile:  NewProfileHandler(profiles),
		Activity: NewActivityHandler(activityService.NewActivityService(store.Activities(), noop)),
		Rate:     NewRateHandler(rateService.NewRateService(store.Rates(), store.Activities(), noop, loc)),
		Shift: NewShiftHandler(shiftService.NewShiftService(
			store.Shifts(), store.Profiles(), store.Activities(), store.Gate(), noop, nopNotifier{}, loc,
		)),
		Payroll: NewPayrollHandler(payrollService.NewPayrollService(payrollService.Dependencies{
			Gate:          store.Gate(),
			Periods:       store.Periods(),
			Confirmations: store.Confirmations(),
			Snapshots:     store.Snapshots(),
			Shifts:        store.Shifts(),
			Rates:         store.Rates(),
			Profiles:      store.Profiles(),
			Cache:         noop,
			Reminders:     cache.NewMemoryReminderLedger(),
			Notifier:      nopNotifier{},
			Location:      loc,
			Now:           time.Now,
		})),
		Notification: NewNotificationHandler(&stubNotifications{unread: 3}, ts.jwt, profiles),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts.router = NewRouter(logger, []string{"http://localhost:3000"}, ts.jwt, profiles, handlers)
	return ts
}

func (ts *testServer) token(t *testing.T, p user.Profile) string {
	t.Helper()
	token, err := ts.jwt.GenerateAccessToken(p.ID, p.Email, time.Hour)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func shiftBody(employeeID, activityID, start, end string) map[string]string {
	return map[string]string{
		"employee_id": employeeID,
		"activity_id": activityID,
		"template":    "custom",
		"start_at":    start,
		"end_at":      end,
	}
}

func TestRouter_Authentication(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ghost, err := ts.jwt.GenerateAccessToken("ghost", "ghost@mol.vn", time.Hour)
	require.NoError(t, err)
	rec = ts.do(t, http.MethodGet, "/api/v1/me", ghost, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	sse, _, err := ts.jwt.GenerateSSEToken(ts.anh.ID)
	require.NoError(t, err)
	rec = ts.do(t, http.MethodGet, "/api/v1/me", sse, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/me", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Anh", resp.Data.(map[string]interface{})["full_name"])
}

func TestRouter_Permissions(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/activities", ts.token(t, ts.anh), map[string]string{"name": "Pha chế"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rec).Error.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/activities", ts.token(t, ts.admin), map[string]string{"name": "Pha chế"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/activities", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec).Data, 2)

	rec = ts.do(t, http.MethodGet, "/api/v1/payroll/export.xlsx?month=2025-09", ts.token(t, ts.anh), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ValidationError(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/payroll/summary?month=2025-13", ts.token(t, ts.admin), nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "month")

	rec = ts.do(t, http.MethodPost, "/api/v1/shifts", ts.token(t, ts.admin), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No month at all is an empty result, not a validation error.
	rec = ts.do(t, http.MethodGet, "/api/v1/payroll/summary", ts.token(t, ts.admin), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, decode(t, rec).Data.(map[string]interface{})["employees"])
}

func TestRouter_ClosedPeriodLocksShiftWrites(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, ts.admin)

	rec := ts.do(t, http.MethodPost, "/api/v1/shifts", admin,
		shiftBody(ts.anh.ID, ts.barista.ID, "2025-09-10T01:00:00Z", "2025-09-10T05:00:00Z"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/periods", admin, map[string]string{"month": "09-2025"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/periods/2025-09/close", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/shifts", admin,
		shiftBody(ts.anh.ID, ts.barista.ID, "2025-09-11T01:00:00Z", "2025-09-11T05:00:00Z"))
	require.Equal(t, http.StatusLocked, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "PERIOD_LOCKED", resp.Error.Code)
	assert.Equal(t, "2025-09", resp.Error.Details["month"])
	assert.Contains(t, resp.Error.Message, "2025-09")

	rec = ts.do(t, http.MethodGet, "/api/v1/payroll/summary?month=2025-09", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "snapshot", data["source"])
	assert.Equal(t, "100000", data["total_salary"])
}

func TestRouter_ShiftConflict(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, ts.admin)

	rec := ts.do(t, http.MethodPost, "/api/v1/shifts", admin,
		shiftBody(ts.anh.ID, ts.barista.ID, "2025-10-10T01:00:00Z", "2025-10-10T05:00:00Z"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/shifts", admin,
		shiftBody(ts.anh.ID, ts.barista.ID, "2025-10-10T04:00:00Z", "2025-10-10T08:00:00Z"))
	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "SHIFT_CONFLICT", resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details["shift_id"])
}

func TestRouter_PaymentRequiresConfirmation(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, ts.admin)

	rec := ts.do(t, http.MethodPost, "/api/v1/payroll/periods", admin, map[string]string{"month": "2025-08"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Still open.
	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/periods/2025-08/confirm", ts.token(t, ts.anh), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/periods/2025-08/close", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/periods/2025-08/confirmations/"+ts.anh.ID+"/paid", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/periods/2025-08/confirm", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/payroll/periods/2025-08/confirmations/"+ts.anh.ID+"/paid", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decode(t, rec).Data.(map[string]interface{})["paid_at"])

	rec = ts.do(t, http.MethodDelete, "/api/v1/payroll/periods/2025-08", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_Downloads(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, ts.admin)

	rec := ts.do(t, http.MethodPost, "/api/v1/shifts", admin,
		shiftBody(ts.anh.ID, ts.barista.ID, "2025-09-10T01:00:00Z", "2025-09-10T05:00:00Z"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/v1/shifts/calendar.ics?month=09-2025", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "shifts-2025-09.ics")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "BEGIN:VEVENT")

	rec = ts.do(t, http.MethodGet, "/api/v1/payroll/export.xlsx?month=2025-09", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-2025-09.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestRouter_Notifications(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/notifications/unread-count", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decode(t, rec).Data.(map[string]interface{})["unread_count"])

	rec = ts.do(t, http.MethodGet, "/api/v1/notifications?page=2&page_size=20", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	meta := decode(t, rec).Meta
	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)

	rec = ts.do(t, http.MethodGet, "/api/v1/notifications/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/notifications/stream?token=garbage", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/notifications/sse-token", ts.token(t, ts.anh), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec).Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}
