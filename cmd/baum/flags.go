package main

import "github.com/urfave/cli"

// Global flags
var (
	// ConfigFlag TOML configuration file
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	// LogFlag overrides [log] level
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Log level: debug, info, warn or error",
	}
	// MaxDepthFlag overrides [decode] max_depth
	MaxDepthFlag = cli.IntFlag{
		Name:  "max-depth",
		Usage: "Reject trees nested deeper than this many inner nodes (0 = unlimited)",
	}
	// MaxSizeFlag overrides [decode] max_size
	MaxSizeFlag = cli.IntFlag{
		Name:  "max-size",
		Usage: "Reject inputs larger than this many bytes (0 = unlimited)",
	}
)

// Command flags
var (
	// OutputFlag writes the result to a file instead of stdout
	OutputFlag = cli.StringFlag{
		Name:  "o, output",
		Usage: "Output file (default stdout)",
	}
	// FromFlag names the input format of convert
	FromFlag = cli.StringFlag{
		Name:  "from",
		Value: "baum",
		Usage: "Input format: " + formatNames(),
	}
	// ToFlag names the output format of convert
	ToFlag = cli.StringFlag{
		Name:  "to",
		Value: "text",
		Usage: "Output format: " + formatNames(),
	}
	// IndentFlag indents json output
	IndentFlag = cli.StringFlag{
		Name:  "indent",
		Usage: "Indentation for json output",
	}
)
