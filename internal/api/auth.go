package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fastprodman/TopupLedger/internal/config"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/golang-jwt/jwt/v4"
)

var ErrUnauthorized = errors.New("unauthorized")

// identityClaims is the token shape issued by the identity provider.
type identityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 identity tokens.
type Authenticator struct {
	secret   []byte
	issuer   string
	audience string
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Verify checks signature, expiry and the optional issuer/audience, and
// returns the identity the token asserts.
func (a *Authenticator) Verify(raw string) (ledger.Identity, error) {
	var c identityClaims

	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ledger.Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if a.issuer != "" && !c.VerifyIssuer(a.issuer, true) {
		return ledger.Identity{}, fmt.Errorf("%w: issuer mismatch", ErrUnauthorized)
	}

	if a.audience != "" && !c.VerifyAudience(a.audience, true) {
		return ledger.Identity{}, fmt.Errorf("%w: audience mismatch", ErrUnauthorized)
	}

	if c.Subject == "" || c.Email == "" {
		return ledger.Identity{}, fmt.Errorf("%w: sub and email claims required", ErrUnauthorized)
	}

	id := ledger.Identity{UID: c.Subject, Email: c.Email, Name: c.Name}
	if c.Picture != "" {
		id.Avatar = &c.Picture
	}

	return id, nil
}

type userCtxKey struct{}

func withUser(ctx context.Context, u users.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// userFrom returns the authenticated user. Only valid behind authenticate.
func userFrom(ctx context.Context) users.User {
	u, _ := ctx.Value(userCtxKey{}).(users.User)
	return u
}

// bearerToken reads "Authorization: Bearer <t>", falling back to the
// access_token query parameter browsers use for websocket upgrades.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return r.URL.Query().Get("access_token")
}

// authenticate verifies the caller and loads (or creates) their profile.
func (h *HandlerProvider) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		id, err := h.auth.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		u, err := h.svc.EnsureProfile(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !userFrom(r.Context()).IsAdmin() {
			writeError(w, http.StatusForbidden, "admin only")
			return
		}

		next.ServeHTTP(w, r)
	})
}
