// Package grpc exposes the feed service over gRPC with the JSON codec of
// package feedrpc.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophfeed/internal/feedrpc"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"google.golang.org/grpc"
)

// feedSvc is the part of services.FeedService the handlers call.
type feedSvc interface {
	Home(ctx context.Context, count int) ([]models.TweetWithUser, error)
	OlderThan(ctx context.Context, maxID int64, count int) ([]models.TweetWithUser, error)
	Publish(ctx context.Context, userID int64, text string) (models.TweetWithUser, error)
}

type GRPCServer struct {
	feedrpc.UnimplementedFeedServiceServer
	address   string
	feed      feedSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, fs feedSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		feed:      fs,
		jwtSecret: []byte(secretKey),
	}
}

// newServer creates the gRPC server with the interceptor chain and the feed
// service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.accessTokenInterceptor))
	feedrpc.RegisterFeedServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
