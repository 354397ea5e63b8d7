package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Options

	Tree  *TreeCmd  `arg:"subcommand:tree" help:"Print the mirrored tree"`
	Ls    *LsCmd    `arg:"subcommand:ls" help:"List files visible for a query"`
	Watch *WatchCmd `arg:"subcommand:watch" help:"Mirror a directory and log every change"`
	Find  *FindCmd  `arg:"subcommand:find" help:"Find files interactively"`
}

// Options are flags shared by every subcommand.
type Options struct {
	Config   string `arg:"--config" help:"config file (default <root>/.dirproject.toml)"`
	LogLevel string `arg:"--log-level" help:"debug, info, warn or error"`
	LogJSON  bool   `arg:"--log-json" help:"log JSON records"`
	Dev      bool   `arg:"--dev" help:"log colored records for terminals"`
	NoColor  bool   `arg:"--no-color" help:"never color output"`
}

// RootPath is the directory a project is opened on.
type RootPath string

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args Args
	Out  io.Writer
}

// NewRunner creates and initializes a new Runner
func NewRunner(args Args) *Runner {
	return &Runner{
		Args: args,
		Out:  os.Stdout,
	}
}

// Run dispatches to the appropriate subcommand
func (r *Runner) Run() error {
	switch {
	case r.Args.Tree != nil:
		return r.runTree(*r.Args.Tree)
	case r.Args.Ls != nil:
		return r.runLs(*r.Args.Ls)
	case r.Args.Watch != nil:
		return r.runWatch(*r.Args.Watch)
	case r.Args.Find != nil:
		return r.runFind(*r.Args.Find)
	default:
		return fmt.Errorf("no subcommand specified, use 'tree', 'ls', 'watch' or 'find'")
	}
}

func rootOrCwd(root string) RootPath {
	if root == "" {
		return "."
	}
	return RootPath(root)
}

func main() {
	var args Args
	parser := arg.MustParse(&args)

	if args.Tree == nil && args.Ls == nil && args.Watch == nil && args.Find == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	color.NoColor = args.NoColor || !isatty.IsTerminal(os.Stdout.Fd())

	runner := NewRunner(args)
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}
