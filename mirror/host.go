package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound means a path or mirror node is missing. Always recoverable.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied means a directory could not be listed for lack of permission.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrListingFailed is any other listing failure.
	ErrListingFailed = errors.New("listing failed")
	// ErrInvalidRoot means the project root does not exist or is not a directory.
	ErrInvalidRoot = errors.New("invalid root")
)

// DirEntry is one result of a directory listing.
type DirEntry struct {
	Name     string
	FullPath string
	IsDir    bool
}

// Lister reads directories on behalf of the synchronizer.
type Lister interface {
	// ListDirectory returns the entries of path. Errors wrap ErrNotFound,
	// ErrPermissionDenied or ErrListingFailed.
	ListDirectory(path string) ([]DirEntry, error)
	// Stat reports whether path exists and whether it is a directory.
	Stat(path string) (exists bool, isDir bool)
}

// Watcher registers directories for change notification.
type Watcher interface {
	Watch(path string) error
	Unwatch(path string) error
}

// Filter decides whether an entry is materialized.
type Filter interface {
	PassesPath(fullPath string, isDir bool) bool
}

// PatternReloader is implemented by filters whose rules are read from files
// inside the tree. The synchronizer calls ReloadPatterns when a listing shows
// such a file appearing, changing or going away.
type PatternReloader interface {
	ReloadPatterns() error
}

// GitIgnoreFile is the per-directory rules file a PatternReloader reads.
const GitIgnoreFile = ".gitignore"

// NopWatcher accepts every registration and never notifies.
type NopWatcher struct{}

func (NopWatcher) Watch(string) error   { return nil }
func (NopWatcher) Unwatch(string) error { return nil }

// OSLister lists the local filesystem. Symlinks are reported as non-directories
// so a link cycle can never make a walk recurse forever.
type OSLister struct{}

func (OSLister) ListDirectory(path string) ([]DirEntry, error) {
	des, err := os.ReadDir(path)
	if err != nil {
		return nil, classify(path, err)
	}

	entries := make([]DirEntry, 0, len(des))
	for _, de := range des {
		entries = append(entries, DirEntry{
			Name:     de.Name(),
			FullPath: filepath.Join(path, de.Name()),
			IsDir:    de.IsDir(),
		})
	}
	return entries, nil
}

func (OSLister) Stat(path string) (bool, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return true, fi.IsDir()
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%w: %s: %w", ErrListingFailed, path, err)
	}
}
