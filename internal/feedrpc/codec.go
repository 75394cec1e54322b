package feedrpc

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype ("application/grpc+feedpb").
const CodecName = "feedpb"

// ErrMalformedMessage marks payloads that are not valid protobuf for the
// expected message. gRPC reports it inside a codes.Internal status, so callers
// match on its text.
var ErrMalformedMessage = errors.New("feedrpc: malformed message")

// wireCodec encodes the feed messages in protobuf binary format.
type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(message)
	if !ok {
		return nil, fmt.Errorf("feedrpc: cannot marshal %T", v)
	}
	b, err := m.appendWire(nil)
	if err != nil {
		return nil, fmt.Errorf("feedrpc marshal %T: %w", v, err)
	}
	return b, nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(message)
	if !ok {
		return fmt.Errorf("feedrpc: cannot unmarshal into %T", v)
	}
	if err := m.consumeWire(data); err != nil {
		return fmt.Errorf("feedrpc unmarshal %T: %w", v, err)
	}
	return nil
}

func (wireCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(wireCodec{})
}
