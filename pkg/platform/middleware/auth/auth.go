// Package auth guards routes with a bearer token and records the token subject as
// the request's actor.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"skillset/pkg/platform/httputil"
	"skillset/pkg/requestcontext"
)

// SubjectValidator validates a raw bearer token and returns its subject.
type SubjectValidator interface {
	Subject(token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token. A nil validator
// disables the check.
func RequireAuth(validator SubjectValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			subject, err := validator.Subject(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(ctx, subject)))
		})
	}
}

func unauthorized(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="skillset"`)
	httputil.WriteErrorResponse(w, http.StatusUnauthorized, httputil.ErrorResponse{
		Error:       "unauthorized",
		Description: desc,
	})
}
