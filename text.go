package baum

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789abcdef"

// String formats n in text notation: a leaf is 0x followed by its bytes as
// two-digit hex separated by '_', an inner node is its children separated by a
// space and enclosed in parentheses.
//
//	(0x01_02_03 (0x 0x01 0x23_10_0a_bc))
func (n Node) String() string {
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n Node) appendText(sb *strings.Builder) {
	if n.kind == KindLeaf {
		appendLeafText(sb, n.data)
		return
	}
	// open inner nodes and the index of their next child
	type open struct {
		n    Node
		next int
	}
	sb.WriteByte('(')
	stack := []open{{n: n}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.n.children) {
			sb.WriteByte(')')
			stack = stack[:len(stack)-1]
			continue
		}
		if top.next > 0 {
			sb.WriteByte(' ')
		}
		c := top.n.children[top.next]
		top.next++
		if c.kind == KindLeaf {
			appendLeafText(sb, c.data)
			continue
		}
		sb.WriteByte('(')
		stack = append(stack, open{n: c})
	}
}

func appendLeafText(sb *strings.Builder, data []byte) {
	sb.WriteString("0x")
	for i, b := range data {
		if i > 0 {
			sb.WriteByte('_')
		}
		sb.WriteByte(hexDigits[b>>4])
		sb.WriteByte(hexDigits[b&0x0f])
	}
}

// ParseText parses exactly one tree in text notation. Hex digits may be upper
// or lower case and '_' separators are ignored; an odd number of digits makes
// the first digit a byte of its own. Errors are *SyntaxError values.
func ParseText(s string) (Node, error) {
	var (
		stack   [][]Node
		root    Node
		hasRoot bool
	)
	attach := func(n Node, at int) error {
		if len(stack) > 0 {
			stack[len(stack)-1] = append(stack[len(stack)-1], n)
			return nil
		}
		if hasRoot {
			return &SyntaxError{Offset: at, Msg: "unexpected data after node"}
		}
		root, hasRoot = n, true
		return nil
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '(':
			if len(stack) == 0 && hasRoot {
				return Node{}, &SyntaxError{Offset: i, Msg: "unexpected data after node"}
			}
			stack = append(stack, []Node{})
			i++
		case c == ')':
			if len(stack) == 0 {
				return Node{}, &SyntaxError{Offset: i, Msg: "unexpected ')'"}
			}
			children := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if err := attach(Node{kind: KindInner, children: children}, i); err != nil {
				return Node{}, err
			}
			i++
		case c == '0':
			start := i
			if i+1 >= len(s) || s[i+1] != 'x' {
				return Node{}, &SyntaxError{Offset: i + 1, Msg: "expected 'x'"}
			}
			b, next := scanHex(s, i+2)
			i = next
			if err := attach(Node{kind: KindLeaf, data: b}, start); err != nil {
				return Node{}, err
			}
		case isSpace(c):
			i++
		default:
			return Node{}, &SyntaxError{Offset: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}

	if len(stack) > 0 {
		return Node{}, &SyntaxError{Offset: len(s), Msg: "unclosed '('"}
	}
	if !hasRoot {
		return Node{}, &SyntaxError{Offset: len(s), Msg: "no node"}
	}
	return root, nil
}

// scanHex reads hex digits and '_' starting at i and returns the decoded bytes
// and the index of the first byte after the literal.
func scanHex(s string, i int) ([]byte, int) {
	var digits []byte
	for ; i < len(s); i++ {
		if s[i] == '_' {
			continue
		}
		d, ok := hexVal(s[i])
		if !ok {
			break
		}
		digits = append(digits, d)
	}

	out := make([]byte, 0, (len(digits)+1)/2)
	if len(digits)%2 == 1 {
		out = append(out, digits[0])
		digits = digits[1:]
	}
	for j := 0; j < len(digits); j += 2 {
		out = append(out, digits[j]<<4|digits[j+1])
	}
	return out, i
}

func hexVal(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
