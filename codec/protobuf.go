package codec

import (
	"errors"

	"google.golang.org/protobuf/proto"
)

// Protobuf is a Codec for protobuf messages. Encoding is deterministic (map
// fields sorted), so equal messages give equal leaves.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message, e.g. func() *mypb.User { return &mypb.User{} }
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	if c.new == nil {
		var zero T
		return zero, errors.New("codec: protobuf codec has no constructor")
	}
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
