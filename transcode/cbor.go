package transcode

import (
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/fkohlgrueber/baum"
)

// CBOR maps trees onto CBOR arrays and byte strings. Text strings decode as
// leaves holding their UTF-8 bytes. The zero value is NOT ready to use.
// Construct with NewCBOR.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR constructs a CBOR transcoder. Encoding uses Core Deterministic
// options, so equal trees give equal CBOR. Decoding allows the deepest nesting
// fxamacker/cbor supports.
func NewCBOR() (CBOR, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := cbor.DecOptions{
		MaxNestedLevels:  MaxNesting,
		MaxArrayElements: math.MaxInt32,
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

func (c CBOR) Encode(n baum.Node) ([]byte, error) {
	if err := checkNesting(n); err != nil {
		return nil, err
	}
	return c.enc.Marshal(toAny(n))
}

func (c CBOR) Decode(b []byte) (baum.Node, error) {
	var v any
	if err := c.dec.Unmarshal(b, &v); err != nil {
		return baum.Node{}, err
	}
	return fromAny("cbor", v, binaryLeaf)
}
