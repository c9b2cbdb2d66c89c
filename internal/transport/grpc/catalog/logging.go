package catalog

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

// LoggingInterceptor logs every call at debug and failed calls at warn.
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		if err != nil {
			logx.Warn().
				Str("method", info.FullMethod).
				Str("code", status.Code(err).String()).
				Dur("elapsed", time.Since(start)).
				Err(err).
				Msg("grpc call failed")
			return resp, err
		}

		logx.Debug().
			Str("method", info.FullMethod).
			Dur("elapsed", time.Since(start)).
			Msg("grpc call")
		return resp, nil
	}
}
