package http

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/auracommerce/storefront/internal/store"
)

const sessionCookie = "aura_session"

// SessionMiddleware assigns every visitor an opaque session id via cookie.
// The id keys the visitor's cart; the cart itself starts empty on first use.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), "session_id", sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value("session_id").(string); ok {
		return sessionID
	}
	return ""
}

// AdminAuthMiddleware guards the admin console: the X-Admin-Password header
// must match the stored admin password. A mismatch is a plain 401 message,
// there is no lockout or rate limiting.
func AdminAuthMiddleware(st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			settings, err := st.Settings(r.Context())
			if err != nil {
				log.Printf("failed to load settings for admin auth: %v", err)
				respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			}

			if r.Header.Get("X-Admin-Password") != settings.AdminPassword {
				respondError(w, http.StatusUnauthorized, "invalid_password", "incorrect password")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
