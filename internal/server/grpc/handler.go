package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/feedrpc"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Home(ctx context.Context, req *feedrpc.HomeRequest) (*feedrpc.TimelineResponse, error) {

	page, err := s.feed.Home(ctx, int(req.Count))
	if err != nil {
		return nil, s.internal(ctx, err)
	}

	return &feedrpc.TimelineResponse{Tweets: toWirePage(page)}, nil
}

func (s *GRPCServer) OlderThan(ctx context.Context, req *feedrpc.OlderRequest) (*feedrpc.TimelineResponse, error) {

	page, err := s.feed.OlderThan(ctx, req.MaxID, int(req.Count))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCursor) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, s.internal(ctx, err)
	}

	return &feedrpc.TimelineResponse{Tweets: toWirePage(page)}, nil
}

func (s *GRPCServer) Publish(ctx context.Context, req *feedrpc.PublishRequest) (*feedrpc.PublishResponse, error) {

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	tweet, err := s.feed.Publish(ctx, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmptyTweet), errors.Is(err, common.ErrTweetTooLong):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, common.ErrorNotFound):
			return nil, status.Error(codes.PermissionDenied, "unknown user")
		}
		return nil, s.internal(ctx, err)
	}

	s.logger.Info(ctx, "Published", "tweet_id", tweet.Tweet.ID, "user_id", userID)
	return &feedrpc.PublishResponse{Tweet: toWire(tweet)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *feedrpc.PingRequest) (*feedrpc.PingResponse, error) {

	return &feedrpc.PingResponse{Status: "OK"}, nil

}

// internal logs err and hides it from the caller.
func (s *GRPCServer) internal(ctx context.Context, err error) error {
	s.logger.Error(ctx, err.Error(), "request_id", RequestIDFromContext(ctx))
	return status.Error(codes.Internal, "internal error")
}

func toWire(t models.TweetWithUser) *feedrpc.Tweet {
	return &feedrpc.Tweet{
		ID:        t.Tweet.ID,
		Body:      t.Tweet.Body,
		CreatedAt: t.Tweet.CreatedAt.UTC(),
		User: &feedrpc.User{
			ID:         t.User.ID,
			Name:       t.User.Name,
			ScreenName: t.User.ScreenName,
			AvatarURL:  t.User.AvatarURL,
		},
	}
}

func toWirePage(page []models.TweetWithUser) []*feedrpc.Tweet {
	out := make([]*feedrpc.Tweet, 0, len(page))
	for _, t := range page {
		out = append(out, toWire(t))
	}
	return out
}
