package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func GRPCErrorResponse(err error) error {
	if code, ok := e.BackendStatus(err); ok {
		return status.Error(codeFromHTTP(code), err.Error())
	}

	switch {
	case errors.Is(err, e.ErrNotFound), errors.Is(err, e.ErrJobNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrUnauthorized), errors.Is(err, e.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, e.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, e.ErrTooManyRequests):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, e.ErrBackendUnavailable):
		return status.Error(codes.Unavailable, e.ErrBackendUnavailable.Error())
	case errors.Is(err, e.ErrStatusBadRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

func codeFromHTTP(code int) codes.Code {
	switch {
	case code == 400:
		return codes.InvalidArgument
	case code == 401:
		return codes.Unauthenticated
	case code == 403:
		return codes.PermissionDenied
	case code == 404:
		return codes.NotFound
	case code == 409:
		return codes.AlreadyExists
	case code == 429:
		return codes.ResourceExhausted
	case code == 502, code == 503, code == 504:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// unaryLogger пишет в лог вызовы и приводит доменные ошибки к кодам gRPC.
func unaryLogger(logger logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if _, ok := status.FromError(err); err != nil && !ok {
			err = GRPCErrorResponse(err)
		}
		logger.Debugf("%s %s %s", info.FullMethod, status.Code(err), time.Since(start))
		return resp, err
	}
}
