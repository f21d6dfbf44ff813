package api

import (
	"context"
)

// stateCodeContextKey is the context key for the normalized state code.
type stateCodeContextKey struct{}

// WithStateCode returns a new context with the normalized state code attached.
func WithStateCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, stateCodeContextKey{}, code)
}

// StateCodeFromContext extracts the state code from the context.
// Returns false if not present or empty.
func StateCodeFromContext(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(stateCodeContextKey{}).(string)
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

// MustStateCode extracts the state code or panics.
// Use only behind VerifyState.
func MustStateCode(ctx context.Context) string {
	code, ok := StateCodeFromContext(ctx)
	if !ok {
		panic("state code not in context: middleware misconfiguration")
	}
	return code
}
