//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/hayeah/dirproject/mirror"
	"github.com/hayeah/dirproject/project"
	"github.com/hayeah/dirproject/watch"
)

var baseSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideLister,
	ProvideProject,
)

// BuildProject opens a project that never watches the filesystem.
func BuildProject(root RootPath, opts Options) (*project.Project, func(), error) {
	wire.Build(
		baseSet,
		ProvideNopWatcher,
	)
	return nil, nil, nil
}

// BuildLive opens a project registered with an fsnotify watcher.
func BuildLive(root RootPath, opts Options) (*Live, func(), error) {
	wire.Build(
		baseSet,
		ProvideWatcher,
		wire.Bind(new(mirror.Watcher), new(*watch.Watcher)),
		wire.Struct(new(Live), "Project", "Watcher", "Log"),
	)
	return nil, nil, nil
}
