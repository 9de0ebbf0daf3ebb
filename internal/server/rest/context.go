package rest

import (
	"context"

	"github.com/legalchicks/lcen-portal/internal/server/auth"
)

type subjectKey struct{}

func withSubject(ctx context.Context, s *auth.Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, s)
}

// SubjectFromContext returns the token subject placed by the request gate.
func SubjectFromContext(ctx context.Context) (*auth.Subject, bool) {
	s, ok := ctx.Value(subjectKey{}).(*auth.Subject)
	return s, ok && s != nil
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
