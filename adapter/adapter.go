// Package adapter implements avrocompat.Adapter. Base carries the behavior
// shared by every release; the avro14 ... avro18 subpackages specialize it.
package adapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/hamba/avro/v2"

	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/compiler/bridge"
	"github.com/syssam/avrocompat/compiler/gen"
)

const binaryBufferSize = 1024

// Base implements avrocompat.Adapter for one release. Enum symbols and fixed
// values are checked against their schema.
type Base struct {
	release avrocompat.Version
	ops     *gen.Operations
	// bindErr is set when the release's generator could not be bound.
	bindErr error
}

var _ avrocompat.Adapter = (*Base)(nil)

// NewBase returns the adapter for release. The code generator is bound once,
// here. A failed binding is logged and Compile then reports it on every call.
func NewBase(release avrocompat.Version, opts ...Option) (*Base, error) {
	cfg := &Config{}
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &Base{release: release}
	binding := cfg.Binding
	if binding == nil {
		jar, err := bridge.Bind(release, cfg.Java, cfg.CompilerJar, cfg.Logger)
		if err != nil {
			cfg.Logger.Warn("code generation unavailable", "release", release.String(), "error", err)
			b.bindErr = err
		} else {
			binding = jar
		}
	}

	genOpts := []gen.Option{gen.WithLogger(cfg.Logger)}
	if cfg.Workers > 0 {
		genOpts = append(genOpts, gen.WithWorkers(cfg.Workers))
	}
	ops, err := gen.New(release, binding, genOpts...)
	if err != nil {
		return nil, err
	}
	b.ops = ops
	return b, nil
}

// Release implements avrocompat.Adapter.
func (b *Base) Release() avrocompat.Version {
	return b.release
}

// NewBinaryEncoder implements avrocompat.Adapter.
func (b *Base) NewBinaryEncoder(w io.Writer) *avro.Writer {
	return avro.NewWriter(w, binaryBufferSize)
}

// NewJSONEncoder implements avrocompat.Adapter.
func (b *Base) NewJSONEncoder(schema avro.Schema, w io.Writer) (*avrocompat.JSONEncoder, error) {
	return avrocompat.NewJSONEncoder(schema, w)
}

// NewJSONEncoderFromGenerator implements avrocompat.Adapter.
func (b *Base) NewJSONEncoderFromGenerator(schema avro.Schema, enc *json.Encoder) (*avrocompat.JSONEncoder, error) {
	return avrocompat.NewJSONEncoderFromGenerator(schema, enc)
}

// NewJSONDecoder implements avrocompat.Adapter.
func (b *Base) NewJSONDecoder(schema avro.Schema, r io.Reader) (*avrocompat.JSONDecoder, error) {
	return avrocompat.NewJSONDecoder(schema, r)
}

// NewJSONDecoderFromString implements avrocompat.Adapter.
func (b *Base) NewJSONDecoderFromString(schema avro.Schema, s string) (*avrocompat.JSONDecoder, error) {
	return avrocompat.NewJSONDecoderFromString(schema, s)
}

// NewEnumSymbol implements avrocompat.Adapter.
func (b *Base) NewEnumSymbol(schema *avro.EnumSchema, symbol string) (avrocompat.EnumSymbol, error) {
	return avrocompat.NewEnumSymbol(schema, symbol)
}

// NewFixed implements avrocompat.Adapter.
func (b *Base) NewFixed(schema *avro.FixedSchema) (avrocompat.Fixed, error) {
	return avrocompat.NewFixed(schema, nil)
}

// NewFixedWithContents implements avrocompat.Adapter.
func (b *Base) NewFixedWithContents(schema *avro.FixedSchema, contents []byte) (avrocompat.Fixed, error) {
	if contents == nil {
		contents = []byte{}
	}
	return avrocompat.NewFixed(schema, contents)
}

// ParsingForm implements avrocompat.Adapter.
func (b *Base) ParsingForm(schema avro.Schema) string {
	return avrocompat.ParsingForm(schema)
}

// Parse implements avrocompat.Adapter.
func (b *Base) Parse(schemaJSON string, known []avro.Schema) (avrocompat.SchemaParseResult, error) {
	return avrocompat.ParseWithKnown(schemaJSON, known)
}

// Compile implements avrocompat.Adapter.
func (b *Base) Compile(ctx context.Context, schemas []avro.Schema, target avrocompat.Version) ([]avrocompat.GeneratedFile, error) {
	if b.bindErr != nil {
		return nil, b.bindErr
	}
	return b.ops.Compile(ctx, schemas, target)
}

// Operations returns the compiler operations backing Compile.
func (b *Base) Operations() *gen.Operations {
	return b.ops
}
