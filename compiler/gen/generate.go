package gen

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hamba/avro/v2"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/compiler/bridge"
)

// Operations generates Java source with one release's generator and rewrites
// the output for older target releases.
type Operations struct {
	release avrocompat.Version
	binding bridge.Binding
	cfg     *Config
}

// New returns the compiler operations for release. A nil binding means the
// release has no generator: Compile then reports an
// *avrocompat.UnsupportedError.
func New(release avrocompat.Version, binding bridge.Binding, opts ...Option) (*Operations, error) {
	if release.IsZero() {
		return nil, NewConfigError("Release", nil, "release is required")
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Operations{release: release, binding: binding, cfg: cfg}, nil
}

// Release returns the release whose generator is used.
func (o *Operations) Release() avrocompat.Version {
	return o.release
}

// Passes returns the passes Transform applies for target.
func (o *Operations) Passes(target avrocompat.Version) []Pass {
	if len(o.cfg.Passes) > 0 {
		return o.cfg.Passes
	}
	return Pipeline(o.release, target)
}

// Compile runs the generator over schemas and, when target is not zero,
// rewrites the output for target. The first schema starts the run and the
// rest are enqueued in order. No schemas yields no files.
//
// An *avrocompat.UnsupportedError from the generator is returned as is;
// every other failure is an *avrocompat.InternalError.
func (o *Operations) Compile(ctx context.Context, schemas []avro.Schema, target avrocompat.Version) ([]avrocompat.GeneratedFile, error) {
	if o.binding == nil {
		return nil, avrocompat.NewUnsupportedError(o.release, "compile", "no code generator bound")
	}
	if len(schemas) == 0 {
		return nil, nil
	}
	logger := o.cfg.Logger.With("release", o.release.String(), "run", uuid.NewString())

	c, err := o.binding.NewCompiler(schemas[0])
	if err != nil {
		return nil, o.fail(NewGenerationError(PhaseEnqueue, "", "start generator", err))
	}
	for _, s := range schemas[1:] {
		if err := c.Enqueue(s); err != nil {
			return nil, o.fail(NewGenerationError(PhaseEnqueue, "", "enqueue schema", err))
		}
	}
	out, err := c.Compile(ctx)
	if err != nil {
		return nil, o.fail(NewGenerationError(PhaseCompile, "", "", err))
	}
	files := make([]avrocompat.GeneratedFile, len(out))
	for i, f := range out {
		files[i] = avrocompat.GeneratedFile{Path: f.Path, Contents: f.Contents}
	}
	logger.Debug("generated sources", "schemas", len(schemas), "files", len(files))
	if target.IsZero() {
		return files, nil
	}
	return o.transform(ctx, logger, files, target)
}

// Transform rewrites files for target, in parallel. The result keeps the
// order of files. The first failing file fails the whole batch.
func (o *Operations) Transform(ctx context.Context, files []avrocompat.GeneratedFile, target avrocompat.Version) ([]avrocompat.GeneratedFile, error) {
	return o.transform(ctx, o.cfg.Logger.With("release", o.release.String()), files, target)
}

func (o *Operations) transform(ctx context.Context, logger *slog.Logger, files []avrocompat.GeneratedFile, target avrocompat.Version) ([]avrocompat.GeneratedFile, error) {
	passes := o.Passes(target)
	if len(passes) == 0 {
		return files, nil
	}
	logger.Debug("patching sources", "target", target.String(), "passes", strings.Join(Names(passes), ","))

	result := make([]avrocompat.GeneratedFile, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.cfg.Workers)
	for i, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			patched, err := applyPasses(logger, f, passes)
			if err != nil {
				return err
			}
			result[i] = patched
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, o.fail(err)
	}
	return result, nil
}

func applyPasses(logger *slog.Logger, f avrocompat.GeneratedFile, passes []Pass) (avrocompat.GeneratedFile, error) {
	code := f.Contents
	for _, p := range passes {
		out, err := p.Rule(code)
		if err != nil {
			gerr := NewGenerationError(PhasePatch, f.Path, "", err)
			gerr.Pass = p.Name
			return avrocompat.GeneratedFile{}, gerr
		}
		if out != code {
			logger.Debug("applied pass", "file", f.Path, "pass", p.Name)
		}
		code = out
	}
	return f.WithContents(code), nil
}

// fail applies the failure policy: unsupported passes through, anything
// else becomes an internal error.
func (o *Operations) fail(err error) error {
	var unsupported *avrocompat.UnsupportedError
	if errors.As(err, &unsupported) {
		return unsupported
	}
	return avrocompat.NewInternalError("compile", err)
}
