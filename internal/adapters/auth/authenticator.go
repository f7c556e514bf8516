package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"event_hotels/internal/domain"
)

// claims mirrors the token payload issued by the sign-in service: {"userId": <n>}.
type claims struct {
	jwt.RegisteredClaims
	UserID *int64 `json:"userId"`
}

// Authenticator turns a bearer token into a user id. A token is accepted only
// when its signature verifies and a session exists for that exact token.
type Authenticator struct {
	secret   []byte
	sessions domain.SessionStore
	now      func() time.Time
}

func New(secret string, sessions domain.SessionStore) *Authenticator {
	return &Authenticator{secret: []byte(secret), sessions: sessions, now: time.Now}
}

// IssueToken signs a token for userID. ttl <= 0 issues a token without expiry.
func (a *Authenticator) IssueToken(userID int64, ttl time.Duration) (string, error) {
	c := claims{UserID: &userID}
	now := a.now()
	c.IssuedAt = jwt.NewNumericDate(now)
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tok, nil
}

// Authenticate validates the Authorization header and returns the user id.
// Every rejection is reported as domain.ErrUnauthorized; the cause is logged.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (int64, error) {
	token, ok := bearer(header)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		log.Debug().Err(err).Msg("bearer token rejected")
		return 0, domain.ErrUnauthorized
	}
	if c.UserID == nil {
		log.Debug().Msg("bearer token has no userId claim")
		return 0, domain.ErrUnauthorized
	}

	s, err := a.sessions.FindSessionByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Msg("session lookup failed")
		}
		return 0, domain.ErrUnauthorized
	}
	if s.UserID != *c.UserID {
		log.Warn().Int64("token_user", *c.UserID).Int64("session_user", s.UserID).Msg("session user mismatch")
		return 0, domain.ErrUnauthorized
	}
	return *c.UserID, nil
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}

type ctxKey struct{}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the id stored by Middleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}

// Middleware rejects unauthenticated requests via onFail and stores the user id in the request context.
func (a *Authenticator) Middleware(onFail func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				onFail(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}
