package feedrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophfeed.FeedService"

const (
	MethodHome      = "/" + ServiceName + "/Home"
	MethodOlderThan = "/" + ServiceName + "/OlderThan"
	MethodPublish   = "/" + ServiceName + "/Publish"
	MethodPing      = "/" + ServiceName + "/Ping"
)

// FeedServiceServer is implemented by the feed service.
type FeedServiceServer interface {
	Home(context.Context, *HomeRequest) (*TimelineResponse, error)
	OlderThan(context.Context, *OlderRequest) (*TimelineResponse, error)
	Publish(context.Context, *PublishRequest) (*PublishResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedFeedServiceServer answers codes.Unimplemented for every method.
type UnimplementedFeedServiceServer struct{}

func (UnimplementedFeedServiceServer) Home(context.Context, *HomeRequest) (*TimelineResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Home not implemented")
}
func (UnimplementedFeedServiceServer) OlderThan(context.Context, *OlderRequest) (*TimelineResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method OlderThan not implemented")
}
func (UnimplementedFeedServiceServer) Publish(context.Context, *PublishRequest) (*PublishResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Publish not implemented")
}
func (UnimplementedFeedServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// FeedServiceClient is the client stub. All calls use the feedpb codec.
type FeedServiceClient interface {
	Home(ctx context.Context, in *HomeRequest, opts ...grpc.CallOption) (*TimelineResponse, error)
	OlderThan(ctx context.Context, in *OlderRequest, opts ...grpc.CallOption) (*TimelineResponse, error)
	Publish(ctx context.Context, in *PublishRequest, opts ...grpc.CallOption) (*PublishResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type feedServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFeedServiceClient(cc grpc.ClientConnInterface) FeedServiceClient {
	return &feedServiceClient{cc: cc}
}

func (c *feedServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *feedServiceClient) Home(ctx context.Context, in *HomeRequest, opts ...grpc.CallOption) (*TimelineResponse, error) {
	out := new(TimelineResponse)
	if err := c.invoke(ctx, MethodHome, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedServiceClient) OlderThan(ctx context.Context, in *OlderRequest, opts ...grpc.CallOption) (*TimelineResponse, error) {
	out := new(TimelineResponse)
	if err := c.invoke(ctx, MethodOlderThan, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedServiceClient) Publish(ctx context.Context, in *PublishRequest, opts ...grpc.CallOption) (*PublishResponse, error) {
	out := new(PublishResponse)
	if err := c.invoke(ctx, MethodPublish, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, MethodPing, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterFeedServiceServer attaches srv to a gRPC server.
func RegisterFeedServiceServer(s grpc.ServiceRegistrar, srv FeedServiceServer) {
	s.RegisterService(&FeedServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(FeedServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FeedServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FeedServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FeedServiceDesc describes the service for grpc.Server.RegisterService.
var FeedServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FeedServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Home", Handler: unaryHandler(MethodHome, FeedServiceServer.Home)},
		{MethodName: "OlderThan", Handler: unaryHandler(MethodOlderThan, FeedServiceServer.OlderThan)},
		{MethodName: "Publish", Handler: unaryHandler(MethodPublish, FeedServiceServer.Publish)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, FeedServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "feedrpc",
}
