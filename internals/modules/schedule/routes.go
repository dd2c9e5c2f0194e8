package schedule

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/status", h.Status)
	r.Post("/run_now", h.RunNow)

	return r
}

/*
- POST: /checks -> run one ad-hoc cycle over exactly the posted urls
	body : CheckURLsRequest
	resp : []CheckRecordResponse / 409 while a cycle is running

- GET: /schedule/status -> run-state snapshot
- POST: /schedule/run_now -> manual cycle over the tracked set, 202 ack
- GET: /urls -> tracked set with cached last-known results
*/
