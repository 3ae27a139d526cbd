package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// gameClaims is placed into request context by requireGameToken.
type gameClaims struct {
	GameID string
	Mode   string
}

type ctxClaimsKey struct{}

func tokenFrom(ctx context.Context) *gameClaims {
	c, _ := ctx.Value(ctxClaimsKey{}).(*gameClaims)
	return c
}

// signGameToken issues an HS256 token bound to one game.
func (s *Server) signGameToken(gameID, mode string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid":  gameID,
		"mode": mode,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	})
	ss, err := token.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseGameToken verifies tok and extracts its game claims.
func (s *Server) parseGameToken(tok string) (*gameClaims, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, errors.New("invalid token")
	}
	gid, _ := claims["gid"].(string)
	mode, _ := claims["mode"].(string)
	if gid == "" {
		return nil, errors.New("token has no game")
	}
	return &gameClaims{GameID: gid, Mode: mode}, nil
}

// requireGameToken rejects requests without a valid game token.
func (s *Server) requireGameToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := s.parseGameToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearer extracts "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
