package main

import (
	"log/slog"

	"github.com/hayeah/dirproject/internal/config"
	"github.com/hayeah/dirproject/internal/logging"
	"github.com/hayeah/dirproject/mirror"
	"github.com/hayeah/dirproject/project"
	"github.com/hayeah/dirproject/watch"
)

// Live is a project whose mirror follows the filesystem.
type Live struct {
	Project *project.Project
	Watcher *watch.Watcher
	Log     *slog.Logger
}

// ProvideConfig resolves the config file for root. --log-level overrides it.
func ProvideConfig(root RootPath, opts Options) (*config.Config, error) {
	cfg, err := config.Resolve(opts.Config, string(root))
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ProvideLogger builds the process logger and makes it the slog default.
func ProvideLogger(cfg *config.Config, opts Options) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Options{
		Level: level,
		JSON:  opts.LogJSON,
		Dev:   opts.Dev,
	})
	slog.SetDefault(logger)
	return logger, nil
}

func ProvideLister() mirror.Lister {
	return mirror.OSLister{}
}

func ProvideNopWatcher() mirror.Watcher {
	return mirror.NopWatcher{}
}

func ProvideWatcher(cfg *config.Config, logger *slog.Logger) (*watch.Watcher, func(), error) {
	w, err := watch.New(logger, cfg.Debounce)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := w.Close(); err != nil {
			logger.Warn("failed to close watcher", "error", err)
		}
	}
	return w, cleanup, nil
}

func ProvideProject(root RootPath, cfg *config.Config, lister mirror.Lister, watcher mirror.Watcher, logger *slog.Logger) (*project.Project, func(), error) {
	p, err := project.Open(string(root), cfg, lister, watcher, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
