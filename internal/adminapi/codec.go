// Package adminapi is the contract of the admin gRPC service shared by the
// server and the CLI: messages, service descriptor, client stub and the JSON
// wire codec they travel with.
package adminapi

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of admin messages.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption selects the JSON codec for an outgoing call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
