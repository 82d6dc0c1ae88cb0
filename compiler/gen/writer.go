package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/avrocompat"
)

// WriteFiles writes files under dir using up to workers goroutines. A
// non-positive workers uses GOMAXPROCS. File paths must be local to dir.
func WriteFiles(ctx context.Context, dir string, files []avrocompat.GeneratedFile, workers int) error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return writeFile(dir, f)
			}
		})
	}

	return eg.Wait()
}

// writeFile writes a single file.
func writeFile(dir string, f avrocompat.GeneratedFile) error {
	name := filepath.FromSlash(f.Path)
	if !filepath.IsLocal(name) {
		return fmt.Errorf("write %s: path escapes output directory", f.Path)
	}
	fullPath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Path, err)
	}
	if err := os.WriteFile(fullPath, []byte(f.Contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}
