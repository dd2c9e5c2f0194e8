package stats

import (
	"net/http"

	"pulsecheck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /stats
func (h *Handler) Summaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	summaries, err := h.service.Summarize(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	out := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, SummaryResponse{
			URL:         s.URL,
			TotalChecks: s.TotalChecks,
			UpCount:     s.UpCount,
			UpPercent:   s.UpPercent,
			ErrorCount:  s.ErrorCount,
			ErrorRate:   s.ErrorRate,
		})
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", out)
}
