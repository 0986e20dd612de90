// Package middleware provides HTTP middleware for bearer token authentication.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// clientKey is the context key for the authenticated API client.
const clientKey ContextKey = "client"

// ErrNoClient is returned by ClientFrom when the request was not authenticated.
var ErrNoClient = errors.New("client not found in request context")

// TokenValidator validates a bearer token and returns the client it was issued to.
type TokenValidator interface {
	ValidateToken(tokenString string) (ClientGetter, error)
}

// ClientGetter exposes the client name carried by validated claims.
type ClientGetter interface {
	GetClient() string
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// client name in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), clientKey, claims.GetClient())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="autofill"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// ClientFrom returns the authenticated client name from the request context.
func ClientFrom(r *http.Request) (string, error) {
	client, ok := r.Context().Value(clientKey).(string)
	if !ok || client == "" {
		return "", ErrNoClient
	}
	return client, nil
}

// WithClient returns a copy of ctx carrying client, as AuthMiddleware would.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey, client)
}
