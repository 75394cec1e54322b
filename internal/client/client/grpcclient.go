package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/feedrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const DefaultTimeout = 10 * time.Second

type GRPCClient struct {
	endpointURL string
	accessToken string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      feedrpc.FeedServiceClient
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewFeedClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults (insecure transport, token interceptor).
func NewFeedClient(endpointURL, accessToken string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpointURL, err)
	}
	c.conn = conn
	c.client = feedrpc.NewFeedServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &feedrpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) FetchHome(ctx context.Context) ([]models.TweetWithUser, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Home(ctx, &feedrpc.HomeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromWirePage(resp)
}

func (s *GRPCClient) FetchOlderThan(ctx context.Context, cursorID int64) ([]models.TweetWithUser, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.OlderThan(ctx, &feedrpc.OlderRequest{MaxID: cursorID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromWirePage(resp)
}

func (s *GRPCClient) Publish(ctx context.Context, text string) (models.TweetWithUser, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Publish(ctx, &feedrpc.PublishRequest{Text: text})
	if err != nil {
		return models.TweetWithUser{}, s.mapError(err)
	}
	if resp == nil {
		return models.TweetWithUser{}, fmt.Errorf("%w: empty publish response", ErrMalformedResponse)
	}
	return fromWire(resp.Tweet)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return ErrUnavailable
	case codes.ResourceExhausted:
		return ErrRateLimited
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.DataLoss:
		return fmt.Errorf("%w: %s", ErrMalformedResponse, st.Message())
	case codes.Internal:
		// local decode failures surface as Internal too
		if strings.Contains(st.Message(), feedrpc.ErrMalformedMessage.Error()) {
			return fmt.Errorf("%w: %s", ErrMalformedResponse, st.Message())
		}
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func fromWirePage(resp *feedrpc.TimelineResponse) ([]models.TweetWithUser, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty timeline response", ErrMalformedResponse)
	}
	out := make([]models.TweetWithUser, 0, len(resp.Tweets))
	for _, t := range resp.Tweets {
		item, err := fromWire(t)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func fromWire(t *feedrpc.Tweet) (models.TweetWithUser, error) {
	if t == nil {
		return models.TweetWithUser{}, fmt.Errorf("%w: nil tweet", ErrMalformedResponse)
	}
	if t.ID <= 0 {
		return models.TweetWithUser{}, fmt.Errorf("%w: tweet id %d", ErrMalformedResponse, t.ID)
	}
	if t.User == nil || t.User.ID <= 0 {
		return models.TweetWithUser{}, fmt.Errorf("%w: tweet %d has no author", ErrMalformedResponse, t.ID)
	}
	return models.TweetWithUser{
		Tweet: models.Tweet{
			ID:        t.ID,
			Body:      t.Body,
			CreatedAt: t.CreatedAt.UTC(),
			AuthorID:  t.User.ID,
		},
		User: models.User{
			ID:         t.User.ID,
			Name:       t.User.Name,
			ScreenName: t.User.ScreenName,
			AvatarURL:  t.User.AvatarURL,
		},
	}, nil
}
