package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/feedrpc"
	"github.com/dmitrijs2005/gophfeed/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	requestIDKey ctxKey = "requestID"
)

// UserIDFromContext returns the user id set by the token interceptor.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RequestIDFromContext returns the id assigned to the current call.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func firstValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// requestIDInterceptor tags the call with the caller's request id or a new
// one, echoes it in the response header and logs the outcome.
func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	id := firstValue(ctx, common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
	}
	ctx = context.WithValue(ctx, requestIDKey, id)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, id))

	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "request",
		"method", info.FullMethod,
		"request_id", id,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}

// accessTokenInterceptor requires a valid access token on every method
// except Ping and puts the user id into the context.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if info.FullMethod == feedrpc.MethodPing {
		return handler(ctx, req)
	}

	accessToken := firstValue(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	ctx = context.WithValue(ctx, userIDKey, userID)

	return handler(ctx, req)
}
