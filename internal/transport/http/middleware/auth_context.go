package middleware

import "context"

type ctxKey string

const (
	ctxEmail ctxKey = "email"
	ctxRole  ctxKey = "role"
)

func WithAccount(ctx context.Context, email, role string) context.Context {
	ctx = context.WithValue(ctx, ctxEmail, email)
	ctx = context.WithValue(ctx, ctxRole, role)
	return ctx
}

func EmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxEmail).(string)
	return v, ok && v != ""
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxRole).(string)
	return v, ok && v != ""
}
