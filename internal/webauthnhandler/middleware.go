package webauthnhandler

import (
	"crypto/sha256"
	"encoding/hex"
	"github.com/intinc/platformexplorer/internal/contexthelpers"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/logging"
	"log/slog"
	"net/http"
)

// AuthenticateMiddleware marks requests of signed in passkey users as authenticated. Anonymous requests pass
// through unchanged, the explorer does not require an account.
func (h *WebAuthnHandler) AuthenticateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := h.sessionManager.GetBytes(ctx, string(userIDSessionKey))
		if userID == nil {
			next.ServeHTTP(w, r)
			return
		}

		exists, err := h.userExists(ctx, userID)
		if err != nil {
			h.logger.LogAttrs(ctx, slog.LevelError, "look up session user",
				slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if !exists {
			// Stale session of a deleted user.
			h.sessionManager.Remove(ctx, string(userIDSessionKey))
			next.ServeHTTP(w, r)
			return
		}

		// Session tokens are bearer secrets and only logged hashed.
		tokenHash := sha256.Sum256([]byte(h.sessionManager.Token(ctx)))
		r = contexthelpers.AuthenticateContext(r.WithContext(logging.WithAttrs(ctx,
			slog.String("session_hash", hex.EncodeToString(tokenHash[:])),
			slog.String("user_id", hex.EncodeToString(userID)),
		)))
		next.ServeHTTP(w, r)
	})
}
