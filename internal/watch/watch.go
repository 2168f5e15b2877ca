// Package watch re-runs a callback when a repository's refs change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/git-lastseen/internal/debounce"
)

const DefaultDelay = 350 * time.Millisecond

// Run watches the git directory of the repository at root and calls onChange
// after each burst of changes settles for delay. Calls happen on the
// goroutine running Run, one at a time. Run returns when ctx is done.
func Run(ctx context.Context, root string, delay time.Duration, onChange func()) error {
	if root == "" {
		return fmt.Errorf("repository root not set")
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Error("watcher close", slog.Any("error", err))
		}
	}()
	for path := range watchPaths(root) {
		slog.Debug("adding path to FS watcher", slog.String("path", path))
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	pending := make(chan struct{}, 1)
	d := debounce.New(delay, func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	})
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			slog.Debug("repository changed, re-running")
			onChange()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if shouldIgnoreWatchPath(ev.Name) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			d.Trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

// watchPaths yields the git directory and every directory under its refs/,
// since fsnotify does not recurse and branch updates land in refs/heads.
func watchPaths(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		gitDir := filepath.Join(root, ".git")
		if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
			// Bare repository, or a worktree whose .git is a file.
			gitDir = root
		}
		if !yield(gitDir) {
			return
		}
		refs := filepath.Join(gitDir, "refs")
		err := filepath.WalkDir(refs, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() {
				return nil
			}
			if !yield(path) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("walk refs", slog.String("path", refs), slog.Any("error", err))
		}
	}
}

func shouldIgnoreWatchPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".lock" || ext == ".ipc"
}
