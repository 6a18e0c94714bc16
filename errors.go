package goalkeeper

import "errors"

var (
	// ErrUnauthenticated covers every identity failure on the request path:
	// missing or malformed Authorization header, invalid or expired token,
	// and session mismatch. Callers translate it to HTTP 401.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized means a valid identity with insufficient privilege (403).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned for unknown identifiers and wrong
	// passwords alike; the message never distinguishes the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRateLimited means admission was denied; the guarded operation was
	// never attempted (429).
	ErrRateLimited = errors.New("rate limited")
	// ErrStoreUnavailable means the shared cache store or the principal
	// store could not be reached. Fatal for the current request, never
	// retried internally (503).
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrValidation marks a request rejected before any store access.
	ErrValidation = errors.New("invalid request")
	// ErrPrincipalNotFound is returned by [PrincipalStore] implementations
	// when no principal matches the identifier.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrPrincipalExists is returned when account creation collides with an
	// existing identifier.
	ErrPrincipalExists = errors.New("principal already exists")
	// ErrEngineNotReady is returned by methods on an engine that was not
	// produced by [Builder.Build].
	ErrEngineNotReady = errors.New("engine not initialized")
)
