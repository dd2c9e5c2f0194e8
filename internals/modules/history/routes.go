package history

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Recent)
	r.Get("/by-url", h.RecentByURL)

	return r
}

/*
- GET: /history?limit={n}  -> recent checks across all urls, newest first
- GET: /history/by-url?url={url}&limit={n} -> recent checks for one url, newest first
*/
