// Command baum converts baum-encoded trees to and from other formats.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

// stdin is the source for "-" and missing input arguments.
var stdin io.Reader = os.Stdin

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "baum"
	app.Usage = "work with baum-encoded trees"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		ConfigFlag,
		LogFlag,
		MaxDepthFlag,
		MaxSizeFlag,
	}
	app.Commands = []cli.Command{
		encodeCommand,
		decodeCommand,
		checkCommand,
		dumpCommand,
		convertCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "baum:", err)
		os.Exit(1)
	}
}
