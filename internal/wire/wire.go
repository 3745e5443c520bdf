package wire

import (
	"bytes"
	"encoding/binary"
)

// Stream: magic(5) | node
// Node:   tag(1) | len(u64 le) | payload(len) for leaves, len child nodes for inner
const (
	MagicLen  = 5
	HeaderLen = 1 + 8

	TagLeaf  byte = 0
	TagInner byte = 1
)

var magic5 = [MagicLen]byte{'B', 'A', 'U', 'M', '1'}

// Magic returns a copy of the stream marker.
func Magic() [MagicLen]byte { return magic5 }

func HasMagic(b []byte) bool {
	return len(b) >= MagicLen && bytes.Equal(b[:MagicLen], magic5[:])
}

// AppendMagic appends the stream marker to dst.
func AppendMagic(dst []byte) []byte {
	return append(dst, magic5[:]...)
}

// AppendHeader appends tag | n(u64 le) to dst.
func AppendHeader(dst []byte, tag byte, n uint64) []byte {
	var u8 [8]byte
	binary.LittleEndian.PutUint64(u8[:], n)
	dst = append(dst, tag)
	return append(dst, u8[:]...)
}

// PutHeader writes tag | n(u64 le) into b, which must hold HeaderLen bytes.
func PutHeader(b []byte, tag byte, n uint64) {
	_ = b[HeaderLen-1]
	b[0] = tag
	binary.LittleEndian.PutUint64(b[1:HeaderLen], n)
}

// Uint64At reads a u64 le at off. ok is false when fewer than 8 bytes remain.
func Uint64At(b []byte, off int) (n uint64, ok bool) {
	if off < 0 || off > len(b) || len(b)-off < 8 { // overflow-safe bound check
		return 0, false
	}
	return binary.LittleEndian.Uint64(b[off : off+8]), true
}

// ValidTag reports whether t names a node variant.
func ValidTag(t byte) bool { return t == TagLeaf || t == TagInner }
