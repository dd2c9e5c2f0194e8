package history

import (
	"net/http"
	"strconv"
	"time"

	"pulsecheck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	service  *Service
	location *time.Location
}

func NewHandler(service *Service, location *time.Location) *Handler {
	return &Handler{
		service:  service,
		location: location,
	}
}

// GET /history?limit=20
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	limit := parseLimit(r.URL.Query().Get("limit"))

	records, err := h.service.Recent(ctx, limit)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", ToResponseList(records, h.location))
}

// GET /history/by-url?url={url}&limit=30
func (h *Handler) RecentByURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	url := r.URL.Query().Get("url")
	limit := parseLimit(r.URL.Query().Get("limit"))

	records, err := h.service.RecentByURL(ctx, url, limit)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", ToResponseList(records, h.location))
}

// parseLimit leaves defaulting to the service, bad input just means "default"
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
