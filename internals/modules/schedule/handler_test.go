package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pulsecheck/internals/modules/history"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	checkErr error
	runErr   error
	records  []history.CheckRecord
	status   Status
	tracked  []TrackedURL
	gotURLs  []string
	ranNow   bool
}

func (f *fakeService) CheckURLs(_ context.Context, urls []string) ([]history.CheckRecord, error) {
	f.gotURLs = urls
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return f.records, nil
}

func (f *fakeService) RunNow() error {
	f.ranNow = true
	return f.runErr
}

func (f *fakeService) Status() Status { return f.status }

func (f *fakeService) Tracked(_ context.Context) ([]TrackedURL, error) {
	return f.tracked, nil
}

func newTestHandler(svc Service) *Handler {
	return NewHandler(svc, validator.New(), time.UTC)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCheckURLsHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"urls": [`},
		{name: "missing urls", body: `{}`},
		{name: "empty list", body: `{"urls": []}`},
		{name: "not a url", body: `{"urls": ["not a url"]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{}
			h := newTestHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checks", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.CheckURLs(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Nil(t, svc.gotURLs)

			body := decodeBody(t, rec)
			require.Equal(t, false, body["success"])
		})
	}
}

func TestCheckURLsHandler_Conflict(t *testing.T) {
	svc := &fakeService{checkErr: ErrCycleInProgress}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checks", strings.NewReader(`{"urls": ["https://example.com"]}`))
	rec := httptest.NewRecorder()
	h.CheckURLs(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckURLsHandler_Success(t *testing.T) {
	code := 200
	rt := 0.42
	svc := &fakeService{records: []history.CheckRecord{{
		ID:           uuid.New(),
		URL:          "https://example.com",
		Status:       history.StatusUp,
		StatusCode:   &code,
		ResponseTime: &rt,
		CheckedAt:    time.Now(),
	}}}
	h := newTestHandler(svc)

	// urls arrive trimmed at the service
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checks", strings.NewReader(`{"urls": ["  https://example.com  "]}`))
	rec := httptest.NewRecorder()
	h.CheckURLs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"https://example.com"}, svc.gotURLs)

	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "https://example.com", first["url"])
	require.Equal(t, "UP", first["status"])
	require.Equal(t, float64(200), first["status_code"])
}

func TestRunNowHandler(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := &fakeService{}
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/run_now", nil)
		rec := httptest.NewRecorder()
		h.RunNow(rec, req)

		require.Equal(t, http.StatusAccepted, rec.Code)
		require.True(t, svc.ranNow)

		body := decodeBody(t, rec)
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "scheduled", data["status"])
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeService{runErr: ErrCycleInProgress}
		h := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/run_now", nil)
		rec := httptest.NewRecorder()
		h.RunNow(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestStatusHandler(t *testing.T) {
	last := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next := last.Add(5 * time.Minute)
	svc := &fakeService{status: Status{
		LastRun:     &last,
		NextRun:     &next,
		EmailAlerts: true,
	}}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/status", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, data["email_alerts"])
	require.Equal(t, false, data["run_in_progress"])
	require.NotEmpty(t, data["last_run"])
	require.NotEmpty(t, data["next_run"])
}

func TestTrackedURLsHandler(t *testing.T) {
	code := 503
	svc := &fakeService{tracked: []TrackedURL{
		{URL: "https://up.example", LastStatus: "UP"},
		{URL: "https://down.example", LastStatus: "DOWN", StatusCode: &code},
	}}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/urls", nil)
	rec := httptest.NewRecorder()
	h.TrackedURLs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)
}
