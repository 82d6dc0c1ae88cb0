// Package bridge binds a release's reference Java code generator.
//
// A Binding is created once per adapter. Each compilation gets its own
// SpecificCompiler: the first schema is supplied when the compiler is
// created, the remaining ones are enqueued, and Compile runs the generator
// and returns every emitted file.
package bridge

import (
	"context"

	"github.com/hamba/avro/v2"
)

// OutputFile is one file emitted by a generator. Path is slash separated and
// relative to the output root.
type OutputFile struct {
	Path     string
	Contents string
}

// SpecificCompiler is a single generator run.
type SpecificCompiler interface {
	// Enqueue adds another schema to the run.
	Enqueue(schema avro.Schema) error
	// Compile runs the generator and returns the emitted files sorted by
	// path.
	Compile(ctx context.Context) ([]OutputFile, error)
}

// Binding creates generator runs for one release.
type Binding interface {
	NewCompiler(first avro.Schema) (SpecificCompiler, error)
}

// Func adapts a plain function to a Binding. The function receives every
// schema of a run in enqueue order.
type Func func(ctx context.Context, schemas []avro.Schema) ([]OutputFile, error)

// NewCompiler implements Binding.
func (f Func) NewCompiler(first avro.Schema) (SpecificCompiler, error) {
	return &funcCompiler{fn: f, schemas: []avro.Schema{first}}, nil
}

type funcCompiler struct {
	fn      Func
	schemas []avro.Schema
}

func (c *funcCompiler) Enqueue(schema avro.Schema) error {
	c.schemas = append(c.schemas, schema)
	return nil
}

func (c *funcCompiler) Compile(ctx context.Context) ([]OutputFile, error) {
	return c.fn(ctx, c.schemas)
}
