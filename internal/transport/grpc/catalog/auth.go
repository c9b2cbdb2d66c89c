package catalog

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

// Authenticator answers whether a session token is signed in.
type Authenticator interface {
	Authenticated(ctx context.Context, token string) (bool, error)
}

// AuthInterceptor rejects calls without a live session token in the
// "authorization: Bearer <token>" metadata.
func AuthInterceptor(auth Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		token := BearerToken(ctx)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}

		ok, err := auth.Authenticated(ctx, token)
		if err != nil {
			logx.Error().Err(err).Str("method", info.FullMethod).Msg("session lookup failed")
			return nil, status.Error(codes.Unavailable, "session store unavailable")
		}
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "session expired or signed out")
		}

		return handler(ctx, req)
	}
}

// BearerToken extracts the bearer token of an incoming call.
func BearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get("authorization") {
		if token, found := strings.CutPrefix(v, "Bearer "); found {
			return strings.TrimSpace(token)
		}
	}
	return ""
}
