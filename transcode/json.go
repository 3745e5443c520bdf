package transcode

import (
	"encoding/base64"

	jsoniter "github.com/json-iterator/go"

	"github.com/fkohlgrueber/baum"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON maps trees onto JSON arrays and strings holding the standard base64
// encoding of each leaf. The zero value is ready to use.
type JSON struct {
	// Indent, when set, pretty-prints the output with this indent string.
	Indent string
}

func (j JSON) Encode(n baum.Node) ([]byte, error) {
	if err := checkNesting(n); err != nil {
		return nil, err
	}
	if j.Indent != "" {
		return json.MarshalIndent(toAny(n), "", j.Indent)
	}
	return json.Marshal(toAny(n))
}

func (JSON) Decode(b []byte) (baum.Node, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return baum.Node{}, err
	}
	return fromAny("json", v, base64Leaf)
}

func base64Leaf(v any) ([]byte, bool, error) {
	s, ok := v.(string)
	if !ok {
		return nil, false, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}
