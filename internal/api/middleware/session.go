package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kritikayadav/screener-backend/internal/adminnav"
	"github.com/kritikayadav/screener-backend/internal/api/response"
	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/session"
)

// SessionDecoder verifies a session token.
type SessionDecoder interface {
	Decode(token string) (*session.Session, error)
}

// Session returns a middleware that attaches the caller's session to the
// request context. The token is read from the named cookie, or from an
// "Authorization: Bearer" header when no cookie is sent. Requests without a
// valid token continue anonymously.
func Session(codec SessionDecoder, cookieName string, log zerolog.Logger) func(http.Handler) http.Handler {
	log = log.With().Str("component", "session").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := codec.Decode(token)
			if err != nil {
				log.Debug().Err(err).Msg("Ignoring invalid session token")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// RequireSession rejects anonymous requests with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).LoggedIn() {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrSessionRequired.Error(), "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without an admin session with 401 and a
// redirect to the admin login page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if to := adminnav.Guard(session.FromContext(r.Context())); to != "" {
			response.RespondRedirect(w, apperrors.ErrAdminRequired.Error(), to)
			return
		}
		next.ServeHTTP(w, r)
	})
}
