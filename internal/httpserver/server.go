// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Game endpoints: GET / (new game), GET /{id}, PUT /{id} (guess).
//   - Spectator endpoint: GET /{id}/watch (WebSocket snapshot feed).
//   - Diagnostics: /health, /metrics (Prometheus), /debug/words.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled for the browser client.
//   - Every game response is a full snapshot of the session; the secret
//     word appears masked until the game ends.
//   - Engine and store errors map onto the HTTP taxonomy here and nowhere
//     else: unknown id → 404, bad input → 400, finished game → 409.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/watch"
)

// Server bundles router, session store, spectator hub, and metrics.
type Server struct {
	r       *chi.Mux
	store   *store.Store
	hub     *watch.Hub
	metrics *metrics.Metrics
}

// New constructs a Server, installs middleware, and registers routes.
// The spectator fan-out loop starts here and runs for the life of the
// server.
func New(st *store.Store, m *metrics.Metrics, clientOrigin string) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		hub:     watch.NewHub(log.With().Str("component", "watch").Logger()),
		metrics: m,
	}
	go s.hub.Run()

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(clientOrigin))              // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", m.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{
			"words": s.store.WordCount(),
			"games": s.store.GameCount(),
		})
	})

	// --- game endpoints ---
	s.r.Get("/", s.handleCreate)
	s.r.Get("/{id}", s.handleRead)
	s.r.Put("/{id}", s.handleGuess)
	s.r.Get("/{id}/watch", s.handleWatch)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such route: "+r.URL.Path)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the single configured origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,PUT,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

// handleCreate starts a fresh game and returns its first snapshot.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	g := s.store.Create()
	snap := g.Snapshot()

	log.Info().Str("gameId", snap.ID).Msg("game created")
	writeJSON(w, http.StatusOK, snap)
}

// handleRead returns the current snapshot of a game.
func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "game_not_found", "no game with id "+id)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// guessReq is the payload for PUT /{id}.
type guessReq struct {
	Letter string `json:"letter"`
}

// handleGuess applies one guess and returns the resulting snapshot.
// Spectators of the game receive the same snapshot over the hub.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "body must be JSON like {\"letter\":\"a\"}")
		return
	}

	snap, err := s.store.Update(id, req.Letter)
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game_not_found", "no game with id "+id)
		return
	case errors.Is(err, game.ErrInvalidLetter):
		writeError(w, http.StatusBadRequest, "illegal_guess", err.Error())
		return
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over", "game is finished; start a new one")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", id).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	s.hub.Broadcast(snap)
	if snap.Status != game.StatusPlaying {
		log.Info().
			Str("gameId", snap.ID).
			Str("status", string(snap.Status)).
			Str("word", snap.Word).
			Msg("game finished")
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleWatch upgrades the connection and streams snapshots of one game.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "game_not_found", "no game with id "+id)
		return
	}
	s.hub.ServeWS(w, r, g.Snapshot())
}

// ------------------------------ responses ----------------------------------

// errorBody is the uniform error envelope for every non-2xx response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}
