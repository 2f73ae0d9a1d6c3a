// Package server provides the HTTP server for the motion analysis engine.
package server

import (
	"encoding/json"
	"net/http"
	"net/netip"
	"time"

	"github.com/ayusman/motionlab/internal/server/api"
	"github.com/ayusman/motionlab/internal/server/middleware"
	"github.com/ayusman/motionlab/internal/session"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Config holds the server configuration.
type Config struct {
	StaticDir       string
	Service         *session.Service
	Log             logrus.FieldLogger
	RateLimit       float64
	RateBurst       int
	TrustedProxies  []netip.Prefix
	MotionThreshold float64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// Server represents the HTTP server for the motion analysis engine.
type Server struct {
	config  Config
	mux     *http.ServeMux
	handler http.Handler
	stream  *StreamHandler
	start   time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.Log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		config.Log = logger
	}

	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	s.handler = middleware.Chain(s.mux,
		middleware.RequestID,
		middleware.Logging(config.Log),
		middleware.Recover(config.Log),
	)
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register the analysis API if a session service is configured
	if s.config.Service != nil {
		var dyspraxia http.Handler = api.NewDyspraxiaHandler(s.config.Service, s.config.Log)
		var limiter *middleware.RateLimiter
		if s.config.RateLimit > 0 {
			limiter = middleware.NewRateLimiter(rate.Limit(s.config.RateLimit), s.config.RateBurst, s.config.Log,
				middleware.WithTrustedProxies(s.config.TrustedProxies))
			dyspraxia = limiter.Middleware(dyspraxia)
		}
		s.mux.Handle(api.Prefix+"/", dyspraxia)

		// The stream shares the API buckets and charges them per message.
		s.stream = NewStreamHandler(s.config.Service, s.config.MotionThreshold, limiter, s.config.Log)
		s.mux.Handle(api.Prefix+"/stream", s.stream)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.stream != nil {
		response["stream_clients"] = s.stream.Clients()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HTTPServer returns an http.Server bound to addr that serves s.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return s.HTTPServer(addr).ListenAndServe()
}
