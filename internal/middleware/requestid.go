package middleware

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID between client and server.
const RequestIDHeader = "X-Request-Id"

type contextKey string

// RequestIDKey is the context key for the current request ID.
const RequestIDKey contextKey = "request_id"

// GetRequestID extracts the request ID from the context.
// Returns empty string if none is set.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDInterceptor stores the caller's request ID in the context,
// generating one when the header is missing, and echoes it in the response.
func RequestIDInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				if req.Header().Get(RequestIDHeader) == "" {
					req.Header().Set(RequestIDHeader, uuid.NewString())
				}
				return next(ctx, req)
			}

			id := req.Header().Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			ctx = context.WithValue(ctx, RequestIDKey, id)

			resp, err := next(ctx, req)
			if resp != nil {
				resp.Header().Set(RequestIDHeader, id)
			}
			return resp, err
		}
	}
}
