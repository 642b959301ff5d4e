package rpc

import (
	"fmt"

	gogoproto "github.com/cosmos/gogoproto/proto"
	"google.golang.org/grpc/encoding"
)

// wireCodec moves gogoproto messages over gRPC without resolving the Any values inside them. Accounts are
// unpacked by the client itself, so an unknown account type surfaces as ErrUnknownAccountType instead of a
// transport level unmarshal failure.
type wireCodec struct{}

var _ encoding.Codec = wireCodec{}

// WireCodec is the gRPC codec used on both ends of a pipeline connection.
func WireCodec() encoding.Codec {
	return wireCodec{}
}

func (wireCodec) Marshal(v any) ([]byte, error) {
	message, ok := v.(gogoproto.Message)
	if !ok {
		return nil, fmt.Errorf("cannot marshal %T: not a gogoproto message", v)
	}
	return gogoproto.Marshal(message)
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	message, ok := v.(gogoproto.Message)
	if !ok {
		return fmt.Errorf("cannot unmarshal into %T: not a gogoproto message", v)
	}
	return gogoproto.Unmarshal(data, message)
}

func (wireCodec) Name() string {
	return "proto"
}
