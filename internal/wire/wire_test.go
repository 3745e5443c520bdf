package wire

import (
	"bytes"
	"math"
	"testing"
)

func TestMagicBytes(t *testing.T) {
	want := []byte{0x42, 0x41, 0x55, 0x4D, 0x31}
	m := Magic()
	if !bytes.Equal(m[:], want) {
		t.Fatalf("magic mismatch: got %x want %x", m, want)
	}
	if got := AppendMagic(nil); !bytes.Equal(got, want) {
		t.Fatalf("AppendMagic: got %x want %x", got, want)
	}
}

func TestHasMagic(t *testing.T) {
	cases := []struct {
		in   []byte
		want bool
	}{
		{nil, false},
		{[]byte("BAUM"), false},
		{[]byte("BAUM1"), true},
		{[]byte("BAUM1\x00"), true},
		{[]byte("BAUM2"), false},
		{[]byte("baum1"), false},
	}
	for _, tc := range cases {
		if got := HasMagic(tc.in); got != tc.want {
			t.Fatalf("HasMagic(%q): got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestHeaderLittleEndian(t *testing.T) {
	got := AppendHeader(nil, TagInner, 3)
	want := []byte{1, 3, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("AppendHeader: got %x want %x", got, want)
	}

	var b [HeaderLen]byte
	PutHeader(b[:], TagLeaf, 0x0102030405060708)
	want = []byte{0, 8, 7, 6, 5, 4, 3, 2, 1}
	if !bytes.Equal(b[:], want) {
		t.Fatalf("PutHeader: got %x want %x", b, want)
	}
}

func TestUint64AtBounds(t *testing.T) {
	b := AppendHeader(nil, TagLeaf, math.MaxUint64)
	n, ok := Uint64At(b, 1)
	if !ok || n != math.MaxUint64 {
		t.Fatalf("Uint64At: got %d ok=%v", n, ok)
	}
	for _, off := range []int{2, len(b), len(b) + 1, -1} {
		if _, ok := Uint64At(b, off); ok {
			t.Fatalf("Uint64At(off=%d) expected short read", off)
		}
	}
}

func TestValidTag(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := i == 0 || i == 1
		if got := ValidTag(byte(i)); got != want {
			t.Fatalf("ValidTag(%#x): got %v want %v", i, got, want)
		}
	}
}
