package avrocompat

import (
	"context"
	"encoding/json"
	"io"

	"github.com/hamba/avro/v2"
)

// Adapter is the capability set every supported Avro release implements.
// Callers that need to encode, decode, parse or compile without caring which
// release is present program against this interface.
//
// Implementations are immutable after construction and safe for concurrent
// use.
type Adapter interface {
	// Release returns the Avro release this adapter speaks for.
	Release() Version

	// NewBinaryEncoder returns a binary encoder writing to w. The caller
	// must Flush it.
	NewBinaryEncoder(w io.Writer) *avro.Writer

	// NewJSONEncoder returns an encoder writing the Avro JSON encoding of
	// values of the given schema to w, one value per line.
	NewJSONEncoder(schema avro.Schema, w io.Writer) (*JSONEncoder, error)

	// NewJSONEncoderFromGenerator is like NewJSONEncoder but emits through
	// an existing token emitter.
	NewJSONEncoderFromGenerator(schema avro.Schema, enc *json.Encoder) (*JSONEncoder, error)

	// NewJSONDecoder returns a decoder reading Avro JSON values of the given
	// schema from r.
	NewJSONDecoder(schema avro.Schema, r io.Reader) (*JSONDecoder, error)

	// NewJSONDecoderFromString is like NewJSONDecoder over in-memory text.
	NewJSONDecoderFromString(schema avro.Schema, s string) (*JSONDecoder, error)

	// NewEnumSymbol returns the enum value for symbol.
	NewEnumSymbol(schema *avro.EnumSchema, symbol string) (EnumSymbol, error)

	// NewFixed returns a zero-filled fixed value.
	NewFixed(schema *avro.FixedSchema) (Fixed, error)

	// NewFixedWithContents returns a fixed value holding a copy of contents.
	NewFixedWithContents(schema *avro.FixedSchema, contents []byte) (Fixed, error)

	// ParsingForm returns the schema's Parsing Canonical Form.
	ParsingForm(schema avro.Schema) string

	// Parse parses schemaJSON, resolving references against the named
	// types in known.
	Parse(schemaJSON string, known []avro.Schema) (SchemaParseResult, error)

	// Compile generates Java source for schemas. When target is not zero,
	// the output is rewritten so it compiles and runs against target and
	// every later release. A release without a code generator returns an
	// *UnsupportedError; any other failure is an *InternalError.
	Compile(ctx context.Context, schemas []avro.Schema, target Version) ([]GeneratedFile, error)
}

// GeneratedFile is one emitted source file. Path is slash separated and
// relative to the output root, e.g. "com/acme/User.java".
//
// GeneratedFile is a value: rewriting produces a new one.
type GeneratedFile struct {
	Path     string
	Contents string
}

// WithContents returns a copy of f holding contents.
func (f GeneratedFile) WithContents(contents string) GeneratedFile {
	f.Contents = contents
	return f
}

// SchemaParseResult is the outcome of parsing schema text.
type SchemaParseResult struct {
	// Main is the parsed schema.
	Main avro.Schema
	// Types holds every named type referenced from Main, by full name,
	// including those supplied as already known.
	Types map[string]avro.NamedSchema
}

// Lookup returns the named type with the given full name.
func (r SchemaParseResult) Lookup(fullName string) (avro.NamedSchema, bool) {
	s, ok := r.Types[fullName]
	return s, ok
}
