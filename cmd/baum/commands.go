package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/disiqueira/gotree"
	"github.com/urfave/cli"

	"github.com/fkohlgrueber/baum"
)

var (
	encodeCommand = cli.Command{
		Action:    action(encodeAction),
		Name:      "encode",
		Usage:     "Encode a tree in text notation into the baum format",
		ArgsUsage: "[in]",
		Flags:     []cli.Flag{OutputFlag},
	}
	decodeCommand = cli.Command{
		Action:    action(decodeAction),
		Name:      "decode",
		Usage:     "Decode a baum file and print it in text notation",
		ArgsUsage: "[in]",
	}
	checkCommand = cli.Command{
		Action:    action(checkAction),
		Name:      "check",
		Usage:     "Validate baum files",
		ArgsUsage: "files...",
	}
	dumpCommand = cli.Command{
		Action:    action(dumpAction),
		Name:      "dump",
		Usage:     "Print a baum file as an indented tree",
		ArgsUsage: "[in]",
	}
	convertCommand = cli.Command{
		Action:    action(convertAction),
		Name:      "convert",
		Usage:     "Convert a tree between formats",
		ArgsUsage: "[in]",
		Flags:     []cli.Flag{FromFlag, ToFlag, IndentFlag, OutputFlag},
	}
)

// env carries what every command needs.
type env struct {
	cfg *Config
	log baum.Logger
	out io.Writer
}

// action builds the env from global flags before running fn.
func action(fn func(*cli.Context, *env) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := getConfig(ctx)
		if err != nil {
			return err
		}
		logw := ctx.App.ErrWriter
		if logw == nil {
			logw = os.Stderr
		}
		lg, err := newLogger(cfg.Log, logw)
		if err != nil {
			return err
		}
		return fn(ctx, &env{cfg: cfg, log: lg, out: ctx.App.Writer})
	}
}

func (e *env) decodeFile(path string) (baum.Node, error) {
	r, err := openInput(path)
	if err != nil {
		return baum.Node{}, err
	}
	defer r.Close()
	n, err := baum.DecodeReader(r, e.cfg.decodeOptions())
	if err != nil {
		return baum.Node{}, fmt.Errorf("%s: %w", displayName(path), err)
	}
	return n, nil
}

func encodeAction(ctx *cli.Context, e *env) error {
	in := ctx.Args().First()
	src, err := readInput(in, e.cfg.Decode.MaxSize)
	if err != nil {
		return err
	}
	n, err := baum.ParseText(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(in), err)
	}
	out := ctx.String("output")
	if err := writeOutput(out, e.out, func(w io.Writer) error { return baum.EncodeTo(w, n) }); err != nil {
		return err
	}
	e.log.Debug("encoded", baum.Fields{"in": displayName(in), "out": outName(out), "bytes": baum.EncodedLen(n)})
	return nil
}

func decodeAction(ctx *cli.Context, e *env) error {
	n, err := e.decodeFile(ctx.Args().First())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, n.String())
	return err
}

type treeStats struct {
	nodes  int
	leaves int
	bytes  int
	depth  int
}

func statsOf(n baum.Node) treeStats {
	var s treeStats
	_ = n.Walk(func(depth int, n baum.Node) error {
		s.nodes++
		if n.IsLeaf() {
			s.leaves++
			s.bytes += n.Len()
		}
		if depth+1 > s.depth {
			s.depth = depth + 1
		}
		return nil
	})
	return s
}

var errCheckFailed = errors.New("check failed")

func checkAction(ctx *cli.Context, e *env) error {
	files := ctx.Args()
	if len(files) == 0 {
		files = cli.Args{"-"}
	}
	failed := 0
	for _, f := range files {
		n, err := e.decodeFile(f)
		if err != nil {
			failed++
			e.log.Warn("invalid tree", baum.Fields{"file": displayName(f), "err": err})
			fmt.Fprintf(e.out, "FAIL %v\n", err)
			continue
		}
		s := statsOf(n)
		fmt.Fprintf(e.out, "ok   %s: %d nodes, %d leaves, %d payload bytes, depth %d\n",
			displayName(f), s.nodes, s.leaves, s.bytes, s.depth)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files invalid", errCheckFailed, failed, len(files))
	}
	return nil
}

// dumpMaxDepth bounds dump output, which grows with the square of the depth.
const dumpMaxDepth = 1000

func dumpAction(ctx *cli.Context, e *env) error {
	in := ctx.Args().First()
	n, err := e.decodeFile(in)
	if err != nil {
		return err
	}
	if d := statsOf(n).depth; d > dumpMaxDepth {
		return fmt.Errorf("%s: tree too deep to dump (depth %d > %d); use decode", displayName(in), d, dumpMaxDepth)
	}
	tree := gotree.New(displayName(in))
	addNode(tree, n)
	_, err = io.WriteString(e.out, tree.Print())
	return err
}

func addNode(tree gotree.Tree, n baum.Node) {
	type item struct {
		parent gotree.Tree
		n      baum.Node
	}
	stack := []item{{tree, n}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.n.IsLeaf() {
			it.parent.Add(fmt.Sprintf("leaf %s (%d bytes)", it.n.String(), it.n.Len()))
			continue
		}
		sub := it.parent.Add(fmt.Sprintf("inner (%d children)", it.n.Len()))
		for i := it.n.Len() - 1; i >= 0; i-- {
			stack = append(stack, item{sub, it.n.Child(i)})
		}
	}
}

func convertAction(ctx *cli.Context, e *env) error {
	from, err := lookupFormat(ctx.String(FromFlag.Name), e.cfg, "")
	if err != nil {
		return err
	}
	to, err := lookupFormat(ctx.String(ToFlag.Name), e.cfg, ctx.String(IndentFlag.Name))
	if err != nil {
		return err
	}

	in := ctx.Args().First()
	src, err := readInput(in, e.cfg.Decode.MaxSize)
	if err != nil {
		return err
	}
	n, err := from.Decode(src)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(in), err)
	}
	b, err := to.Encode(n)
	if err != nil {
		return err
	}
	out := ctx.String("output")
	if err := writeOutput(out, e.out, func(w io.Writer) error { _, err := w.Write(b); return err }); err != nil {
		return err
	}
	e.log.Info("converted", baum.Fields{
		"from":  ctx.String(FromFlag.Name),
		"to":    ctx.String(ToFlag.Name),
		"nodes": statsOf(n).nodes,
	})
	return nil
}

func displayName(path string) string {
	if isStdio(path) {
		return "<stdin>"
	}
	return path
}

func outName(path string) string {
	if isStdio(path) {
		return "<stdout>"
	}
	return path
}
