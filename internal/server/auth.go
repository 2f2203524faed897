package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/auth"
	"github.com/jstrader/tradejournal/internal/domain"
)

// Authenticator verifies bearer tokens against the identity provider and
// injects the resolved account ID into the request context.
type Authenticator struct {
	verifier domain.TokenVerifier
	log      zerolog.Logger
}

// NewAuthenticator creates a new auth middleware.
func NewAuthenticator(verifier domain.TokenVerifier, log zerolog.Logger) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// Middleware enforces the auth policy: every request carries an ID token,
// verified against the provider each time. An account with an unverified
// email address gets 403 plus a courtesy re-send of the verification mail.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		account, err := a.verifier.Verify(r.Context(), token)
		if err != nil {
			a.log.Debug().Err(err).Msg("Token verification failed")
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if !account.EmailVerified {
			// Courtesy action: re-send the verification mail in the
			// background, never block or fail the response on it.
			go func(idToken string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := a.verifier.SendVerificationEmail(ctx, idToken); err != nil {
					a.log.Warn().Err(err).Msg("Failed to re-send verification email")
				}
			}(token)

			writeAuthError(w, http.StatusForbidden, "email address not verified")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithAccount(r.Context(), *account)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
