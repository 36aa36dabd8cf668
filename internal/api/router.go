package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/mbtistock/internal/api/handlers"
	"github.com/wonny/mbtistock/pkg/database"
	"github.com/wonny/mbtistock/pkg/logger"
)

// HealthChecker reports backing store health; nil means no check
type HealthChecker interface {
	HealthCheck(ctx context.Context) database.HealthStatus
}

// Handlers bundles every endpoint group
type Handlers struct {
	Stock  *handlers.StockHandler
	MBTI   *handlers.MBTIHandler
	Naver  *handlers.NaverHandler
	Health HealthChecker
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, allowedOrigin string, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	get := []string{http.MethodGet, http.MethodOptions}

	r.HandleFunc("/health", healthCheckHandler(h.Health)).Methods(get...)

	api := r.PathPrefix("/api").Subrouter()

	// MBTI
	api.HandleFunc("/mbti", h.MBTI.ListThemes).Methods(get...)
	api.HandleFunc("/mbti/{type}/portfolio", h.MBTI.GetPortfolio).Methods(get...)
	api.HandleFunc("/mbti/{type}/insight", h.MBTI.GetInsight).Methods(get...)

	// Stocks
	api.HandleFunc("/stocks", h.Stock.ListStocks).Methods(get...)
	api.HandleFunc("/stocks/{ticker}/history", h.Stock.GetHistory).Methods(get...)
	api.HandleFunc("/stocks/{ticker}/financials", h.Stock.GetFinancials).Methods(get...)

	// Naver proxy
	api.HandleFunc("/naver/quote/{ticker}", h.Naver.GetQuote).Methods(get...)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(corsMiddleware(allowedOrigin))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":  "ok",
			"service": "mbtistock-api",
		}
		status := http.StatusOK

		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()

			db := checker.HealthCheck(ctx)
			body["database"] = db
			if !db.Healthy {
				body["status"] = "degraded"
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, status, body)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
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

					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware allows the SPA origin; preflight requests end here
func corsMiddleware(origin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
