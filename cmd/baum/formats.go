package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fkohlgrueber/baum"
	"github.com/fkohlgrueber/baum/codec"
	"github.com/fkohlgrueber/baum/transcode"
)

// textFormat is the parenthesized hex notation.
type textFormat struct{}

func (textFormat) Encode(n baum.Node) ([]byte, error) { return []byte(n.String() + "\n"), nil }
func (textFormat) Decode(b []byte) (baum.Node, error) { return baum.ParseText(string(b)) }

var formats = map[string]func(c *Config, indent string) (codec.Codec[baum.Node], error){
	"baum": func(c *Config, _ string) (codec.Codec[baum.Node], error) {
		return codec.Baum{Options: c.decodeOptions()}, nil
	},
	"text": func(*Config, string) (codec.Codec[baum.Node], error) { return textFormat{}, nil },
	"cbor": func(*Config, string) (codec.Codec[baum.Node], error) { return transcode.NewCBOR() },
	"msgpack": func(*Config, string) (codec.Codec[baum.Node], error) {
		return transcode.Msgpack{}, nil
	},
	"json": func(_ *Config, indent string) (codec.Codec[baum.Node], error) {
		return transcode.JSON{Indent: indent}, nil
	},
}

func formatNames() string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// lookupFormat returns the codec for name. Inputs of every format are bounded
// by the configured max size.
func lookupFormat(name string, c *Config, indent string) (codec.Codec[baum.Node], error) {
	mk, ok := formats[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, formatNames())
	}
	inner, err := mk(c, indent)
	if err != nil {
		return nil, err
	}
	return codec.LimitCodec[baum.Node]{Inner: inner, MaxDecode: c.Decode.MaxSize}, nil
}
