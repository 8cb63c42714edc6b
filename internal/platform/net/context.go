// Package net holds transport-neutral request context helpers and the error envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keySubject ctxKey = "subject"

// WithRequest stores a request id where chimw.GetReqID can find it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithSubject records who passed bearer auth (e.g. "cron")
func WithSubject(ctx context.Context, sub string) context.Context {
	if sub == "" {
		return ctx
	}
	return context.WithValue(ctx, keySubject, sub)
}

// Subject returns the authenticated subject if any
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(keySubject).(string)
	return s
}
