package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pulsecheck/internals/modules/history"
	"pulsecheck/pkg/apperror"
	"pulsecheck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Service is what the handler needs from the orchestrator.
type Service interface {
	CheckURLs(ctx context.Context, urls []string) ([]history.CheckRecord, error)
	RunNow() error
	Status() Status
	Tracked(ctx context.Context) ([]TrackedURL, error)
}

type Handler struct {
	service   Service
	validator *validator.Validate
	location  *time.Location
}

func NewHandler(service Service, validator *validator.Validate, location *time.Location) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		location:  location,
	}
}

// POST /checks
func (h *Handler) CheckURLs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	// decode request body
	var req CheckURLsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}

	for i, url := range req.URLs {
		req.URLs[i] = strings.TrimSpace(url)
	}

	// validate request body
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "urls must be a non-empty list of valid urls")
		return
	}

	records, err := h.service.CheckURLs(ctx, req.URLs)
	if err != nil {
		if errors.Is(err, ErrCycleInProgress) {
			utils.WriteError(w, http.StatusConflict, reqID, apperror.Conflict, "a check cycle is already in progress")
			return
		}
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", history.ToResponseList(records, h.location))
}

// GET /schedule/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	st := h.service.Status()

	utils.WriteJSON(w, http.StatusOK, reqID, "", StatusResponse{
		LastRun:       formatTime(st.LastRun, h.location),
		NextRun:       formatTime(st.NextRun, h.location),
		EmailAlerts:   st.EmailAlerts,
		RunInProgress: st.RunInProgress,
	})
}

// POST /schedule/run_now
func (h *Handler) RunNow(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	if err := h.service.RunNow(); err != nil {
		if errors.Is(err, ErrCycleInProgress) {
			utils.WriteError(w, http.StatusConflict, reqID, apperror.Conflict, "a check cycle is already in progress")
			return
		}
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusAccepted, reqID, "", RunNowResponse{Status: "scheduled"})
}

// GET /urls
func (h *Handler) TrackedURLs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	tracked, err := h.service.Tracked(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	out := make([]TrackedURLResponse, 0, len(tracked))
	for _, t := range tracked {
		out = append(out, TrackedURLResponse{
			URL:          t.URL,
			LastStatus:   t.LastStatus,
			StatusCode:   t.StatusCode,
			ResponseTime: t.ResponseTime,
			CheckedAt:    formatTime(t.CheckedAt, h.location),
		})
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", out)
}
