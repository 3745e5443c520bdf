package baum

import (
	"bytes"
	"errors"
	"testing"
)

func TestZeroNodeIsEmptyLeaf(t *testing.T) {
	var n Node
	if !n.IsLeaf() || n.IsInner() || n.Len() != 0 || n.Kind() != KindLeaf {
		t.Fatalf("zero node: kind=%v len=%d", n.Kind(), n.Len())
	}
	if !n.Equal(Leaf(nil)) || !n.Equal(Leaf([]byte{})) {
		t.Fatalf("zero node should equal empty leaf")
	}
}

func TestAccessors(t *testing.T) {
	l := Leaf([]byte("abc"))
	if !bytes.Equal(l.Bytes(), []byte("abc")) || l.Len() != 3 || l.Children() != nil {
		t.Fatalf("leaf accessors: %q %d %v", l.Bytes(), l.Len(), l.Children())
	}

	in := Inner(l, Inner())
	if !in.IsInner() || in.Len() != 2 || in.Bytes() != nil {
		t.Fatalf("inner accessors: len=%d bytes=%v", in.Len(), in.Bytes())
	}
	if !in.Child(0).Equal(l) || !in.Child(1).Equal(Inner()) {
		t.Fatalf("Child mismatch")
	}
	if KindLeaf.String() != "leaf" || KindInner.String() != "inner" {
		t.Fatalf("Kind.String: %s %s", KindLeaf, KindInner)
	}
}

func TestChildOnLeafPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Leaf(nil).Child(0)
}

func TestConstructorsCopyInputs(t *testing.T) {
	b := []byte{1, 2}
	l := Leaf(b)
	b[0] = 9
	if l.Bytes()[0] != 1 {
		t.Fatalf("Leaf aliases caller bytes")
	}

	cs := []Node{Leaf([]byte{1})}
	in := Inner(cs...)
	cs[0] = Leaf([]byte{2})
	if !in.Child(0).Equal(Leaf([]byte{1})) {
		t.Fatalf("Inner aliases caller slice")
	}

	got := in.Children()
	got[0] = Inner()
	if !in.Child(0).IsLeaf() {
		t.Fatalf("Children exposes internal slice")
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b Node
		want bool
	}{
		{Leaf(nil), Inner(), false},
		{Inner(Leaf([]byte{1})), Inner(Leaf([]byte{1})), true},
		{Inner(Leaf([]byte{1}), Leaf([]byte{2})), Inner(Leaf([]byte{2}), Leaf([]byte{1})), false},
		{Inner(Leaf(nil)), Inner(Leaf(nil), Leaf(nil)), false},
		{threeChildExample(), threeChildExample(), true},
	}
	for i, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Fatalf("case %d: Equal got %v want %v", i, got, tc.want)
		}
	}
}

func TestWalkPreOrder(t *testing.T) {
	var got []string
	var depths []int
	err := threeChildExample().Walk(func(depth int, n Node) error {
		got = append(got, n.Kind().String())
		depths = append(depths, depth)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"inner", "leaf", "inner", "leaf", "leaf", "leaf"}
	wantDepths := []int{0, 1, 1, 2, 2, 1}
	for i := range want {
		if got[i] != want[i] || depths[i] != wantDepths[i] {
			t.Fatalf("Walk order: got %v %v want %v %v", got, depths, want, wantDepths)
		}
	}

	stop := errors.New("stop")
	visited := 0
	err = threeChildExample().Walk(func(int, Node) error {
		visited++
		if visited == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || visited != 2 {
		t.Fatalf("Walk stop: err=%v visited=%d", err, visited)
	}
}
