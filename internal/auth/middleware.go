package auth

import (
	"net/http"
	"time"
)

// AuthMiddleware guards plain chi routes with the admin session. Tokens past
// half their lifetime are renewed with a fresh cookie.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := bearerToken(r.Header.Get("Authorization"))
		if tokenString == "" {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				http.Error(w, MsgNoSession, http.StatusUnauthorized)
				return
			}
			tokenString = cookie.Value
		}

		claims, err := h.ParseToken(tokenString)
		if err != nil {
			h.logger.WarnContext(r.Context(), "admin token rejected", "path", r.URL.Path)
			http.Error(w, MsgInvalidSession, http.StatusUnauthorized)
			return
		}

		// Sliding session: refresh token if it's more than halfway through its duration
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if time.Until(exp.Time) < TokenDuration/2 {
				if newToken, err := h.GenerateToken(); err == nil {
					cookie := h.sessionCookie(newToken)
					http.SetCookie(w, &cookie)
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}
