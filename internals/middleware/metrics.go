package middle

import (
	"net/http"
	"strconv"
	"time"

	"pulsecheck/internals/metrics"

	"github.com/go-chi/chi/v5/middleware"
)

func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			metrics.RequestCount.
				WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(ww.Status())).
				Inc()
			metrics.RequestDuration.
				WithLabelValues(r.URL.Path, r.Method).
				Observe(time.Since(start).Seconds())
		}
		return http.HandlerFunc(fn)
	}
}
