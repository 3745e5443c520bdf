package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fkohlgrueber/baum"
)

func isStdio(path string) bool { return path == "" || path == "-" }

// openInput opens path, or stdin for "" and "-".
func openInput(path string) (io.ReadCloser, error) {
	if isStdio(path) {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

// readInput reads all of path. A positive limit fails inputs longer than
// limit bytes with baum.ErrTooLarge after reading at most limit+1 of them.
func readInput(path string, limit int) ([]byte, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if limit <= 0 || int64(limit) == math.MaxInt64 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(b) > limit {
		return nil, fmt.Errorf("%s: input exceeds %d bytes: %w", displayName(path), limit, baum.ErrTooLarge)
	}
	return b, nil
}

// writeOutput runs fn against path, or against std for "" and "-".
func writeOutput(path string, std io.Writer, fn func(io.Writer) error) error {
	if isStdio(path) {
		return fn(std)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
