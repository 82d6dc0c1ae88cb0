package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/avrocompat/compiler/load"
)

// settle is how long watch waits after the last change before recompiling.
const settle = 100 * time.Millisecond

func newWatchCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [flags] <schema file or directory>...",
		Short: "Compile, then recompile whenever a schema file changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			return watch(cmd.Context(), s, args, cmd.OutOrStdout(), o.logger)
		},
	}
}

// watch compiles paths, then recompiles on every schema change until ctx is
// done. Compilation failures are logged, not returned.
func watch(ctx context.Context, s *settings, paths []string, stdout io.Writer, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range watchDirs(paths) {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	run := func() {
		if err := compile(ctx, s, paths, stdout); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("compile failed", "error", err)
		}
	}
	run()

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				// Files may land in the directory before it is watched.
				for _, dir := range watchDirs([]string{ev.Name}) {
					if err := w.Add(dir); err != nil {
						logger.Warn("watch directory", "dir", dir, "error", err)
					}
				}
				timer.Reset(settle)
				continue
			}
			if !isSchemaEvent(ev) {
				continue
			}
			logger.Debug("schema changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			run()
		}
	}
}

// watchDirs returns the directories to watch for paths: directories and
// their subdirectories as is, files through their parent directory.
func watchDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(filepath.Dir(p))
			continue
		}
		_ = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isSchemaEvent(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), load.Ext) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
