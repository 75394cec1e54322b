package feedrpc

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// message is implemented by every request and response. The encoding is the
// protobuf binary format of
//
//	message User {
//	  int64 id = 1;
//	  string name = 2;
//	  string screen_name = 3;
//	  string avatar_url = 4;
//	}
//	message Tweet {
//	  int64 id = 1;
//	  string body = 2;
//	  google.protobuf.Timestamp created_at = 3;
//	  User user = 4;
//	}
//	message HomeRequest { int32 count = 1; }
//	message OlderRequest { int64 max_id = 1; int32 count = 2; }
//	message TimelineResponse { repeated Tweet tweets = 1; }
//	message PublishRequest { string text = 1; }
//	message PublishResponse { Tweet tweet = 1; }
//	message PingRequest {}
//	message PingResponse { string status = 1; }
type message interface {
	appendWire(b []byte) ([]byte, error)
	consumeWire(b []byte) error
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedMessage, fmt.Sprintf(format, args...))
}

/*************
 * Encoding
 *************/

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, m message) ([]byte, error) {
	inner, err := m.appendWire(nil)
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

func appendTime(b []byte, num protowire.Number, t time.Time) ([]byte, error) {
	if t.IsZero() {
		return b, nil
	}
	inner, err := proto.Marshal(timestamppb.New(t))
	if err != nil {
		return nil, fmt.Errorf("feedrpc: encode timestamp: %w", err)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

/*************
 * Decoding
 *************/

type field struct {
	num   protowire.Number
	typ   protowire.Type
	value uint64
	bytes []byte
}

// walk calls fn for every varint and length-delimited field of b. Fields of
// other wire types are skipped, as are unknown field numbers in fn.
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return malformed("tag: %v", protowire.ParseError(n))
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.value, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return malformed("field %d: %v", num, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.VarintType && typ != protowire.BytesType {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (f field) want(typ protowire.Type) error {
	if f.typ != typ {
		return malformed("field %d: wire type %d, want %d", f.num, f.typ, typ)
	}
	return nil
}

func (f field) asInt64(dst *int64) error {
	if err := f.want(protowire.VarintType); err != nil {
		return err
	}
	*dst = int64(f.value)
	return nil
}

func (f field) asInt32(dst *int32) error {
	if err := f.want(protowire.VarintType); err != nil {
		return err
	}
	*dst = int32(f.value)
	return nil
}

func (f field) asString(dst *string) error {
	if err := f.want(protowire.BytesType); err != nil {
		return err
	}
	*dst = string(f.bytes)
	return nil
}

func (f field) asMessage(m message) error {
	if err := f.want(protowire.BytesType); err != nil {
		return err
	}
	return m.consumeWire(f.bytes)
}

func (f field) asTime(dst *time.Time) error {
	if err := f.want(protowire.BytesType); err != nil {
		return err
	}
	ts := &timestamppb.Timestamp{}
	if err := proto.Unmarshal(f.bytes, ts); err != nil {
		return malformed("field %d: %v", f.num, err)
	}
	if err := ts.CheckValid(); err != nil {
		return malformed("field %d: %v", f.num, err)
	}
	*dst = ts.AsTime()
	return nil
}

/*************
 * Messages
 *************/

func (u *User) appendWire(b []byte) ([]byte, error) {
	b = appendInt(b, 1, u.ID)
	b = appendString(b, 2, u.Name)
	b = appendString(b, 3, u.ScreenName)
	b = appendString(b, 4, u.AvatarURL)
	return b, nil
}

func (u *User) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			return f.asInt64(&u.ID)
		case 2:
			return f.asString(&u.Name)
		case 3:
			return f.asString(&u.ScreenName)
		case 4:
			return f.asString(&u.AvatarURL)
		}
		return nil
	})
}

func (t *Tweet) appendWire(b []byte) ([]byte, error) {
	b = appendInt(b, 1, t.ID)
	b = appendString(b, 2, t.Body)
	b, err := appendTime(b, 3, t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if t.User != nil {
		return appendMessage(b, 4, t.User)
	}
	return b, nil
}

func (t *Tweet) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			return f.asInt64(&t.ID)
		case 2:
			return f.asString(&t.Body)
		case 3:
			return f.asTime(&t.CreatedAt)
		case 4:
			if t.User == nil {
				t.User = &User{}
			}
			return f.asMessage(t.User)
		}
		return nil
	})
}

func (r *HomeRequest) appendWire(b []byte) ([]byte, error) {
	return appendInt(b, 1, int64(r.Count)), nil
}

func (r *HomeRequest) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			return f.asInt32(&r.Count)
		}
		return nil
	})
}

func (r *OlderRequest) appendWire(b []byte) ([]byte, error) {
	b = appendInt(b, 1, r.MaxID)
	return appendInt(b, 2, int64(r.Count)), nil
}

func (r *OlderRequest) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			return f.asInt64(&r.MaxID)
		case 2:
			return f.asInt32(&r.Count)
		}
		return nil
	})
}

func (r *TimelineResponse) appendWire(b []byte) ([]byte, error) {
	var err error
	for i, t := range r.Tweets {
		if t == nil {
			return nil, fmt.Errorf("feedrpc: nil tweet at index %d", i)
		}
		if b, err = appendMessage(b, 1, t); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (r *TimelineResponse) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		t := &Tweet{}
		if err := f.asMessage(t); err != nil {
			return err
		}
		r.Tweets = append(r.Tweets, t)
		return nil
	})
}

func (r *PublishRequest) appendWire(b []byte) ([]byte, error) {
	return appendString(b, 1, r.Text), nil
}

func (r *PublishRequest) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			return f.asString(&r.Text)
		}
		return nil
	})
}

func (r *PublishResponse) appendWire(b []byte) ([]byte, error) {
	if r.Tweet == nil {
		return b, nil
	}
	return appendMessage(b, 1, r.Tweet)
}

func (r *PublishResponse) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		if r.Tweet == nil {
			r.Tweet = &Tweet{}
		}
		return f.asMessage(r.Tweet)
	})
}

func (r *PingRequest) appendWire(b []byte) ([]byte, error) { return b, nil }

func (r *PingRequest) consumeWire(b []byte) error {
	return walk(b, func(field) error { return nil })
}

func (r *PingResponse) appendWire(b []byte) ([]byte, error) {
	return appendString(b, 1, r.Status), nil
}

func (r *PingResponse) consumeWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			return f.asString(&r.Status)
		}
		return nil
	})
}
