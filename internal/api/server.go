package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mentiontracker/brand-mentions/internal/metrics"
	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/mentiontracker/brand-mentions/internal/query"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server exposes the read-only mention API
type Server struct {
	query        *query.Service
	defaultLimit int
	origins      []string
}

// NewServer creates the API. defaultLimit caps /api/mentions when the
// caller gives no limit; zero means uncapped.
func NewServer(queryService *query.Service, defaultLimit int, allowedOrigins []string) *Server {
	return &Server{
		query:        queryService,
		defaultLimit: defaultLimit,
		origins:      allowedOrigins,
	}
}

// Handler returns the router wrapped with CORS and request metrics
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(metricsMiddleware)

	// registered on the top-level router so a wrong method yields 405, not 404
	router.HandleFunc("/api/mentions", s.mentionsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", s.statsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/health", s.healthHandler).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
}

func (s *Server) mentionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.query.Mentions(filter))
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.query.Stats())
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.query.Health())
}

func (s *Server) parseFilter(r *http.Request) (query.Filter, error) {
	params := r.URL.Query()
	filter := query.Filter{Limit: s.defaultLimit}

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, fmt.Errorf("limit must be a non-negative integer")
		}
		filter.Limit = limit
	}

	if raw := params.Get("source"); raw != "" {
		source := models.SourceKind(raw)
		if !source.Valid() {
			return filter, fmt.Errorf("unknown source %q", raw)
		}
		filter.Source = source
	}

	if raw := params.Get("sentiment"); raw != "" {
		sentiment := models.Sentiment(raw)
		if !sentiment.Valid() {
			return filter, fmt.Errorf("unknown sentiment %q", raw)
		}
		filter.Sentiment = sentiment
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Debug("Handled request")
	})
}
