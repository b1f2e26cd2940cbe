package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/gradekit/gradeboard/internal/analytics"
	"github.com/gradekit/gradeboard/internal/dashboard"
	"github.com/gradekit/gradeboard/pkg/config"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// NewRouter creates and configures the HTTP router. All routing lives here.
func NewRouter(pipeline *dashboard.Pipeline, loader *analytics.Loader, cfg *config.Config, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", dashboardHandler(pipeline, log)).Methods("GET")
	r.HandleFunc("/grade_analysis_data.json", documentHandler(loader, log)).Methods("GET")
	r.HandleFunc("/healthz", healthCheckHandler).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(rateLimitMiddleware(cfg, log))

	return r
}

// dashboardHandler evaluates the render pipeline once per request and writes
// the resulting page. Pipeline failures surface as the error-notice page, not
// as an HTTP error. Query parameters narrow the remediation table.
func dashboardHandler(pipeline *dashboard.Pipeline, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := dashboard.NewPageTarget()
		pipeline.Render(r.Context(), target)

		target.ApplyFilter(dashboard.RowFilter{
			Competency: r.URL.Query().Get("competency"),
			Student:    r.URL.Query().Get("student"),
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := target.Render(w); err != nil {
			log.WithError(err).Error("Failed to write dashboard page")
		}
	}
}

// documentHandler serves the raw analytics document, so the dashboard's data
// source is reachable relative to the page.
func documentHandler(loader *analytics.Loader, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := loader.Fetch(r.Context())
		if err != nil {
			status := http.StatusNotFound
			var loadErr *analytics.LoadError
			if errors.As(err, &loadErr) && loadErr.Status != 0 {
				status = loadErr.Status
			}

			log.WithError(err).Warn("Analytics document unavailable")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "analytics document unavailable",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "gradeboard",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware applies a token-bucket limit across all routes.
func rateLimitMiddleware(cfg *config.Config, log *logger.Logger) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.WithField("path", r.URL.Path).Warn("Rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
