package utils

import (
	"context"
	"time"
)

type ContextKey string

const (
	UserCtxKey   ContextKey = "user"
	RequestIDKey ContextKey = "request_id"
	TimeKey      ContextKey = "time"
	PathKey      ContextKey = "path"
	MethodKey    ContextKey = "method"
)

// ContextKeys lists every key the logger may lift into structured fields.
var ContextKeys = []ContextKey{UserCtxKey, RequestIDKey, TimeKey, PathKey, MethodKey}

func GetContextValue(ctx context.Context, key ContextKey) (any, bool) {
	val := ctx.Value(key)
	return val, val != nil
}

func SetUser(ctx context.Context, user any) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

func GetUser(ctx context.Context) any {
	return ctx.Value(UserCtxKey)
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	return requestID, ok
}

func ElapsedTime(ctx context.Context) (time.Duration, bool) {
	start, ok := ctx.Value(TimeKey).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}
