package httpapi

import "context"

type ctxKey string

const (
	userIDKey    ctxKey = "pt.userID"
	requestIDKey ctxKey = "pt.requestID"
)

// WithUserID stores the authenticated internal user id in context.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx fetches the internal user id from context.
func UserIDFromCtx(ctx context.Context) (int64, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// WithRequestID stores the request correlation id in context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx fetches the request correlation id from context.
func RequestIDFromCtx(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
