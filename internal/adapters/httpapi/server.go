// Package httpapi exposes the caller-facing API over HTTP: session start,
// dialogue turns, and listing broadcast, plus health and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bolibazaar/bolibazaar/internal/logging"
	"github.com/bolibazaar/bolibazaar/pkg/broadcast"
	"github.com/bolibazaar/bolibazaar/pkg/dialogue"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
	"github.com/bolibazaar/bolibazaar/pkg/pricing"
	"github.com/bolibazaar/bolibazaar/pkg/session"
)

// Server wires the dialogue engine and the broadcast simulator to HTTP.
type Server struct {
	engine    *dialogue.Engine
	sessions  *session.Manager
	listings  ports.ListingStore
	simulator *broadcast.Simulator
	learner   *pricing.Learner
	logger    *slog.Logger

	turnDuration *prometheus.HistogramVec
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithLearner exposes the pricing snapshot endpoint.
func WithLearner(l *pricing.Learner) Option {
	return func(s *Server) { s.learner = l }
}

// WithMetrics registers the request duration histogram.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Server) {
		s.turnDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bolibazaar_http_request_seconds",
				Help:    "HTTP handler latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)
		reg.MustRegister(s.turnDuration)
	}
}

// NewServer creates the HTTP server facade.
func NewServer(engine *dialogue.Engine, sessions *session.Manager, listings ports.ListingStore, simulator *broadcast.Simulator, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		listings:  listings,
		simulator: simulator,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.timed("start_session", s.handleStartSession))
		r.Get("/sessions/{sessionID}", s.timed("get_session", s.handleGetSession))
		r.Post("/sessions/{sessionID}/turns", s.timed("advance_session", s.handleTurn))
		r.Post("/listings/{listingID}/broadcast", s.timed("broadcast", s.handleBroadcast))
		r.Get("/pricing", s.timed("pricing", s.handlePricing))
	})

	return r
}

func (s *Server) timed(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		if s.turnDuration != nil {
			s.turnDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	}
}

type startSessionRequest struct {
	Language string `json:"language"`
}

type startSessionResponse struct {
	SessionID string       `json:"session_id"`
	Greeting  string       `json:"greeting"`
	Stage     domain.Stage `json:"stage"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var body startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	newSession, greeting, err := s.engine.Start(r.Context(), body.Language)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedLanguage) {
			writeError(w, http.StatusBadRequest, "unsupported_language", err.Error())
			return
		}
		s.logger.Error("start session failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to start session")
		return
	}

	if err := s.sessions.Save(r.Context(), newSession); err != nil {
		s.logger.Error("session save failed", "session_id", newSession.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to persist session")
		return
	}

	writeJSON(w, http.StatusCreated, startSessionResponse{
		SessionID: newSession.ID,
		Greeting:  greeting,
		Stage:     newSession.Stage,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	loaded, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found", err.Error())
			return
		}
		s.logger.Error("session load failed", "session_id", sessionID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	writeJSON(w, http.StatusOK, loaded)
}

type turnRequest struct {
	Utterance string `json:"utterance"`
}

type turnResponse struct {
	SessionID string       `json:"session_id"`
	Stage     domain.Stage `json:"stage"`
	Reply     string       `json:"reply"`
	Slots     domain.Slots `json:"slots"`
	ListingID string       `json:"listing_id,omitempty"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body turnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Utterance == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "utterance is required")
		return
	}

	var resp turnResponse
	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		current, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}

		result, err := s.engine.Advance(ctx, current, body.Utterance)
		if err != nil {
			return err
		}

		if result.Listing != nil {
			if err := s.listings.Save(ctx, result.Listing); err != nil {
				return err
			}
			resp.ListingID = result.Listing.ID
		}
		if err := s.sessions.Store().Save(ctx, result.Session); err != nil {
			return err
		}

		resp.SessionID = sessionID
		resp.Stage = result.Stage
		resp.Reply = result.Reply
		resp.Slots = result.Session.Slots
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "session_not_found", err.Error())
		case errors.Is(err, domain.ErrSessionTerminated):
			writeError(w, http.StatusConflict, "session_terminated", err.Error())
		default:
			s.logger.Error("turn failed", "session_id", sessionID, "err", err)
			writeError(w, http.StatusInternalServerError, "internal", "failed to advance session")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")

	l, err := s.listings.Load(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "listing_not_found", err.Error())
			return
		}
		s.logger.Error("listing load failed", "listing_id", listingID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load listing")
		return
	}

	if l.Status != domain.ListingDraft {
		writeError(w, http.StatusConflict, "listing_not_available",
			"listing "+listingID+" is "+string(l.Status)+" and cannot be broadcast")
		return
	}

	if err := s.listings.SetStatus(r.Context(), listingID, domain.ListingBroadcast); err != nil {
		s.logger.Error("listing status update failed", "listing_id", listingID, "err", err)
	}
	l.Status = domain.ListingBroadcast

	event, err := s.simulator.Broadcast(r.Context(), l)
	s.finishSession(r.Context(), l.SessionID, event.Outcome)

	if err != nil {
		// The goods are still for sale after a failed attempt.
		if serr := s.listings.SetStatus(r.Context(), listingID, domain.ListingDraft); serr != nil {
			s.logger.Error("listing status update failed", "listing_id", listingID, "err", serr)
		}
		writeBroadcastError(w, event, err)
		return
	}

	if err := s.listings.SetStatus(r.Context(), listingID, domain.ListingSold); err != nil {
		s.logger.Error("listing status update failed", "listing_id", listingID, "err", err)
	}
	writeJSON(w, http.StatusOK, event)
}

// finishSession moves the originating session out of the broadcasting stage.
func (s *Server) finishSession(ctx context.Context, sessionID string, outcome domain.Outcome) {
	if sessionID == "" {
		return
	}
	err := s.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		current, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		return s.sessions.Store().Save(ctx, s.engine.FinishBroadcast(current, outcome))
	})
	if err != nil {
		s.logger.Warn("failed to finish session after broadcast",
			"session_id", sessionID, "err", err)
	}
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	if s.learner == nil {
		writeError(w, http.StatusNotFound, "not_enabled", "pricing snapshot not enabled")
		return
	}
	writeJSON(w, http.StatusOK, s.learner.Snapshot())
}
