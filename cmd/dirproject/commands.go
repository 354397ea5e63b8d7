package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/hayeah/dirproject/fzf"
	"github.com/hayeah/dirproject/mirror"
)

// TreeCmd prints the mirror.
type TreeCmd struct {
	Root string `arg:"positional" help:"project root (default .)"`
}

// LsCmd runs one query over the mirror.
type LsCmd struct {
	Root  string `arg:"positional" help:"project root (default .)"`
	Query string `arg:"-q,--query" help:"search query"`
	Mode  string `arg:"-m,--mode" help:"exact, char or word (default from config)"`
}

// WatchCmd keeps the mirror in sync until interrupted.
type WatchCmd struct {
	Root string `arg:"positional" help:"project root (default .)"`
}

// FindCmd opens the interactive finder.
type FindCmd struct {
	Root string `arg:"positional" help:"project root (default .)"`
}

func (r *Runner) runTree(cmd TreeCmd) error {
	p, cleanup, err := BuildProject(rootOrCwd(cmd.Root), r.Args.Options)
	if err != nil {
		return err
	}
	defer cleanup()

	return p.WriteTree(r.Out)
}

func (r *Runner) runLs(cmd LsCmd) error {
	p, cleanup, err := BuildProject(rootOrCwd(cmd.Root), r.Args.Options)
	if err != nil {
		return err
	}
	defer cleanup()

	if cmd.Mode != "" {
		mode, err := fzf.ParseMode(cmd.Mode)
		if err != nil {
			return err
		}
		p.SetMode(mode)
	}

	for _, path := range p.Search(cmd.Query) {
		if _, err := fmt.Fprintln(r.Out, path); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runWatch(cmd WatchCmd) error {
	app, cleanup, err := BuildLive(rootOrCwd(cmd.Root), r.Args.Options)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Log.Info("watching", "dirs", len(app.Project.Watched()))
	err = app.Watcher.Run(ctx, func(dir string) {
		res, err := app.Project.OnDirectoryChanged(dir)
		if err != nil {
			logReconcileError(app, dir, err)
			return
		}
		printResult(r.Out, res)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) runFind(cmd FindCmd) error {
	app, cleanup, err := BuildLive(rootOrCwd(cmd.Root), r.Args.Options)
	if err != nil {
		return err
	}
	defer cleanup()

	path, err := runFinder(app)
	if err != nil {
		return err
	}
	if path != "" {
		_, err = fmt.Fprintln(r.Out, path)
	}
	return err
}

func logReconcileError(app *Live, dir string, err error) {
	if errors.Is(err, mirror.ErrNotFound) {
		app.Log.Debug("change outside the mirror", "dir", dir)
		return
	}
	app.Log.Warn("reconcile failed", "dir", dir, "error", err)
}

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
)

func printResult(w io.Writer, res mirror.Result) {
	for _, p := range res.Added {
		addedColor.Fprintf(w, "+ %s\n", p)
	}
	for _, p := range res.Removed {
		removedColor.Fprintf(w, "- %s\n", p)
	}
}
