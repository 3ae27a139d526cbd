// internal/httpserver/server.go
//
// HTTP server wiring for Hangman's serve mode.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/health", "POST /game/new", "GET /stats".
//   - Token-gated endpoints: "POST /game/guess", "GET /game/{id}".
//   - Recording finished games in the results history when one is configured.
//
// Notes:
//   - Every game is created with a signed token naming its ID; only the bearer
//     of that token can guess on or inspect the game.
//   - The secret is never sent while a game is still being played.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Recorder persists finished games. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, r history.Result) error
	Summary(ctx context.Context) (history.Summary, error)
	Recent(ctx context.Context, limit int) ([]history.Result, error)
}

// Config holds serve-mode settings.
type Config struct {
	JWTSecret string        // HMAC key for game tokens
	DailySalt string        // salt for the per-day secret
	TokenTTL  time.Duration // lifetime of game tokens; default 24h
}

// Server bundles router, in-memory game store, word list and history.
type Server struct {
	r       *chi.Mux
	cfg     Config
	store   store.Store
	words   *words.List
	history Recorder // nil when no database is configured
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// rec may be nil.
func New(cfg Config, st store.Store, list *words.List, rec Recorder) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, words: list, history: rec, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.With(s.requireGameToken()).Post("/game/guess", s.handleGuess)
	s.r.With(s.requireGameToken()).Get("/game/{id}", s.handleState)
	s.r.Get("/stats", s.handleStats)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

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

// ------------------------------ GAME ---------------------------------------

// gameView is the public shape of a game.
type gameView struct {
	ID         string   `json:"id"`
	Mask       string   `json:"mask"`
	Guessed    []string `json:"guessed"`
	Wrong      []string `json:"wrong"`
	WrongCount int      `json:"wrongCount"`
	WrongLimit int      `json:"wrongLimit"`
	Guesses    int      `json:"guesses"`
	State      string   `json:"state"`
	Secret     string   `json:"secret,omitempty"` // only once finished
}

func viewOf(g *game.Game) gameView {
	v := gameView{
		ID:         g.ID,
		Mask:       g.Mask(),
		Guessed:    game.Letters(g.Correct),
		Wrong:      game.Letters(g.Wrong),
		WrongCount: g.Wrong.Size(),
		WrongLimit: g.WrongLimit,
		Guesses:    g.Guesses,
		State:      string(g.State()),
	}
	if g.State().Finished() {
		v.Secret = g.Secret
	}
	return v
}

type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Secret string `json:"secret"` // optional fixed secret (testing); overrides mode
}
type newGameRes struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Mode      string    `json:"mode"`
	Game      gameView  `json:"game"`
}

// handleNewGame picks a secret, stores the game and returns its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var secret string
	mode := req.Mode
	switch {
	case req.Secret != "":
		secret, mode = req.Secret, "fixed"
	case mode == "" || mode == "random":
		secret, mode = s.words.Choose(), "random"
	case mode == "daily":
		secret = s.words.Daily(s.now(), s.cfg.DailySalt)
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	g := game.New(secret)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signGameToken(g.ID, mode)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Info().Str("gameId", g.ID).Str("mode", mode).Msg("game created")

	_ = json.NewEncoder(w).Encode(newGameRes{ID: g.ID, Token: tok, ExpiresAt: exp, Mode: mode, Game: viewOf(g)})
}

type guessReq struct {
	ID    string `json:"id"`
	Guess string `json:"guess"`
}
type guessRes struct {
	Outcome game.Outcome `json:"outcome"`
	Game    gameView     `json:"game"`
}

// handleGuess applies one guess and records the game once it finishes.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	claims := tokenFrom(r.Context())
	if claims == nil || claims.GameID != req.ID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var (
		outcome  game.Outcome
		view     gameView
		finished *history.Result
	)
	err := s.store.Update(r.Context(), req.ID, func(g *game.Game) error {
		out, st, err := g.ApplyGuess(req.Guess)
		if err != nil {
			return err
		}
		outcome, view = out, viewOf(g)
		if st.Finished() {
			res, err := history.FromGame(g, claims.Mode)
			if err == nil {
				finished = &res
			}
		}
		return nil
	})
	if err != nil {
		status, code := guessError(err)
		writeError(w, status, code)
		return
	}

	if finished != nil && s.history != nil {
		if err := s.history.Record(r.Context(), *finished); err != nil {
			log.Warn().Err(err).Str("gameId", req.ID).Msg("record result")
		}
	}
	_ = json.NewEncoder(w).Encode(guessRes{Outcome: outcome, Game: view})
}

// guessError maps engine and store errors to a status and error code.
func guessError(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrFinished):
		return http.StatusConflict, "finished"
	case errors.Is(err, game.ErrEmptyGuess):
		return http.StatusBadRequest, "empty_guess"
	case errors.Is(err, game.ErrNotLetter):
		return http.StatusBadRequest, "not_letter"
	case errors.Is(err, game.ErrDuplicate):
		return http.StatusBadRequest, "duplicate"
	default:
		log.Error().Err(err).Msg("guess")
		return http.StatusInternalServerError, "internal"
	}
}

// handleState returns the current view of a game.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims := tokenFrom(r.Context())
	if claims == nil || claims.GameID != id {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	var view gameView
	err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		view = viewOf(g)
		return nil
	})
	if err != nil {
		status, code := guessError(err)
		writeError(w, status, code)
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

// handleStats reports history totals and the latest results.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "stats_disabled")
		return
	}
	sum, err := s.history.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("stats summary")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	recent, err := s.history.Recent(r.Context(), 10)
	if err != nil {
		log.Error().Err(err).Msg("stats recent")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"summary": sum, "recent": recent})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
