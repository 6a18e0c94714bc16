package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	goalkeeper "github.com/obafemio/goalkeeper"
)

type authResultContextKey struct{}

// AuthResultFromContext returns the verified identity attached by [Guard].
func AuthResultFromContext(ctx context.Context) (*goalkeeper.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*goalkeeper.AuthResult)
	return res, ok
}

// Guard rejects requests that fail the engine's validation pipeline and
// attaches the verified identity to the request context otherwise. Set
// requireAdmin to also demand the elevated flag.
func Guard(engine *goalkeeper.Engine, requireAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				WriteError(w, goalkeeper.ErrEngineNotReady)
				return
			}

			ctx := goalkeeper.WithClientIP(r.Context(), clientIP(r))
			res, err := engine.ValidateRequest(ctx, r.Header.Get("Authorization"), requireAdmin)
			if err != nil {
				WriteError(w, err)
				return
			}

			ctx = context.WithValue(ctx, authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteError translates engine errors to their HTTP status and writes a
// JSON body with a generic, non-distinguishing message. Unrecognized
// errors are reported as a server-side failure.
func WriteError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, goalkeeper.ErrInvalidCredentials):
		return http.StatusUnauthorized, goalkeeper.ErrInvalidCredentials.Error()
	case errors.Is(err, goalkeeper.ErrUnauthenticated):
		return http.StatusUnauthorized, goalkeeper.ErrUnauthenticated.Error()
	case errors.Is(err, goalkeeper.ErrUnauthorized):
		return http.StatusForbidden, goalkeeper.ErrUnauthorized.Error()
	case errors.Is(err, goalkeeper.ErrRateLimited):
		return http.StatusTooManyRequests, goalkeeper.ErrRateLimited.Error()
	case errors.Is(err, goalkeeper.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, goalkeeper.ErrPrincipalExists):
		return http.StatusConflict, goalkeeper.ErrPrincipalExists.Error()
	default:
		// Store unreachable or unexpected internal failure; details stay
		// out of the response body.
		return http.StatusServiceUnavailable, "service unavailable"
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
