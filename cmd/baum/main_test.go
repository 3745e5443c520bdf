package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fkohlgrueber/baum"
)

func sampleTree() baum.Node {
	return baum.Inner(
		baum.Leaf([]byte{0x01}),
		baum.Inner(baum.Leaf([]byte{0x02}), baum.Leaf(nil)),
	)
}

// run executes the app with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"baum"}, args...))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, b, 0o600))
	return p
}

func withStdin(t *testing.T, s string) {
	t.Helper()
	old := stdin
	stdin = strings.NewReader(s)
	t.Cleanup(func() { stdin = old })
}

func TestEncodeDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "tree.txt", []byte(sampleTree().String()+"\n"))
	out := filepath.Join(dir, "tree.baum")

	_, _, err := run(t, "encode", "-o", out, in)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, baum.Encode(sampleTree()), b)

	stdout, _, err := run(t, "decode", out)
	require.NoError(t, err)
	require.Equal(t, "(0x01 (0x02 0x))\n", stdout)
}

func TestEncodeStdinToStdout(t *testing.T) {
	withStdin(t, "(0x01 ())")
	stdout, _, err := run(t, "encode")
	require.NoError(t, err)
	require.Equal(t, string(baum.Encode(baum.Inner(baum.Leaf([]byte{1}), baum.Inner()))), stdout)
}

func TestEncodeRejectsBadText(t *testing.T) {
	withStdin(t, "(0x01")
	_, _, err := run(t, "encode", "-")
	var se *baum.SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	good := baum.Encode(sampleTree())

	bad := writeFile(t, dir, "bad.baum", []byte("BAUM2"))
	_, _, err := run(t, "decode", bad)
	require.ErrorIs(t, err, baum.ErrBadMagic)
	require.Contains(t, err.Error(), "bad.baum")

	cut := writeFile(t, dir, "cut.baum", good[:len(good)-2])
	_, _, err = run(t, "decode", cut)
	require.ErrorIs(t, err, baum.ErrUnexpectedEOF)

	_, _, err = run(t, "decode", filepath.Join(dir, "missing.baum"))
	require.Error(t, err)
}

func TestGlobalLimits(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "t.baum", baum.Encode(sampleTree()))

	_, _, err := run(t, "--max-depth", "1", "decode", p)
	require.ErrorIs(t, err, baum.ErrDepthExceeded)

	_, _, err = run(t, "--max-size", "10", "decode", p)
	require.ErrorIs(t, err, baum.ErrTooLarge)

	_, _, err = run(t, "--max-depth", "2", "decode", p)
	require.NoError(t, err)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.baum", baum.Encode(sampleTree()))
	bad := writeFile(t, dir, "bad.baum", append(baum.Encode(sampleTree()), 0x00))

	stdout, _, err := run(t, "check", good)
	require.NoError(t, err)
	require.Contains(t, stdout, "ok   "+good+": 5 nodes, 3 leaves, 2 payload bytes, depth 3")

	stdout, stderr, err := run(t, "check", good, bad)
	require.ErrorIs(t, err, errCheckFailed)
	require.Contains(t, err.Error(), "1 of 2 files invalid")
	require.Contains(t, stdout, "FAIL "+bad)
	require.Contains(t, stderr, "invalid tree")
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "t.baum", baum.Encode(sampleTree()))

	stdout, _, err := run(t, "dump", p)
	require.NoError(t, err)
	for _, want := range []string{
		p,
		"inner (2 children)",
		"leaf 0x01 (1 bytes)",
		"leaf 0x (0 bytes)",
	} {
		require.Contains(t, stdout, want)
	}
	require.Equal(t, 5, strings.Count(stdout, "inner ")+strings.Count(stdout, "leaf "))
}

func TestConvertRoundTrips(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "t.baum", baum.Encode(sampleTree()))

	for _, format := range []string{"text", "cbor", "msgpack", "json", "baum"} {
		t.Run(format, func(t *testing.T) {
			mid := filepath.Join(dir, "t."+format)
			_, _, err := run(t, "convert", "--from", "baum", "--to", format, "-o", mid, src)
			require.NoError(t, err)

			stdout, _, err := run(t, "convert", "--from", format, "--to", "text", mid)
			require.NoError(t, err)
			require.Equal(t, sampleTree().String()+"\n", stdout)
		})
	}
}

func TestConvertJSONIndent(t *testing.T) {
	withStdin(t, "(0x6869 ())")
	stdout, _, err := run(t, "convert", "--from", "text", "--to", "json", "--indent", "  ")
	require.NoError(t, err)
	require.Equal(t, "[\n  \"aGk=\",\n  []\n]", strings.TrimSpace(stdout))
}

func TestConvertUnknownFormat(t *testing.T) {
	_, _, err := run(t, "convert", "--from", "xml", "-")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown format")
}

func TestConvertRespectsMaxSize(t *testing.T) {
	withStdin(t, "(0x01_02_03_04_05_06_07_08)")
	_, _, err := run(t, "--max-size", "8", "convert", "--from", "text", "--to", "baum")
	require.ErrorIs(t, err, baum.ErrTooLarge)
	require.Contains(t, err.Error(), "input exceeds 8 bytes")
}

func TestEncodeRespectsMaxSize(t *testing.T) {
	withStdin(t, "(0x01_02_03_04_05_06_07_08)")
	_, _, err := run(t, "--max-size", "8", "encode")
	require.ErrorIs(t, err, baum.ErrTooLarge)

	withStdin(t, "(0x01)")
	_, _, err = run(t, "--max-size", "6", "encode")
	require.NoError(t, err)
}

func TestDeepTree(t *testing.T) {
	const depth = 200000
	n := baum.Leaf(nil)
	for i := 0; i < depth; i++ {
		n = baum.Inner(n)
	}
	p := writeFile(t, t.TempDir(), "deep.baum", baum.Encode(n))

	stdout, _, err := run(t, "check", p)
	require.NoError(t, err)
	require.Contains(t, stdout, "depth 200001")

	stdout, _, err = run(t, "decode", p)
	require.NoError(t, err)
	require.Len(t, stdout, 2*depth+3)

	_, _, err = run(t, "dump", p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "too deep to dump")
}
