package transcode

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fkohlgrueber/baum"
)

// Msgpack maps trees onto MessagePack arrays and bin values. str values decode
// as leaves holding their bytes. The zero value is ready to use.
type Msgpack struct{}

func (Msgpack) Encode(n baum.Node) ([]byte, error) {
	if err := checkNesting(n); err != nil {
		return nil, err
	}
	return msgpack.Marshal(toAny(n))
}

func (Msgpack) Decode(b []byte) (baum.Node, error) {
	var v any
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return baum.Node{}, err
	}
	return fromAny("msgpack", v, binaryLeaf)
}
