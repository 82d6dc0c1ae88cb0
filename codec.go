package avrocompat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hamba/avro/v2"
	"github.com/linkedin/goavro/v2"
)

// JSONEncoder writes values in the Avro JSON encoding. Values use the
// goavro native form: records are map[string]any, and non-null union
// branches are wrapped as map[string]any{"type name": value}.
type JSONEncoder struct {
	codec *goavro.Codec
	emit  func([]byte) error
}

// NewJSONEncoder returns an encoder for schema writing one value per line
// to w.
func NewJSONEncoder(schema avro.Schema, w io.Writer) (*JSONEncoder, error) {
	codec, err := newCodec(schema)
	if err != nil {
		return nil, err
	}
	return &JSONEncoder{
		codec: codec,
		emit: func(b []byte) error {
			if _, err := w.Write(append(b, '\n')); err != nil {
				return fmt.Errorf("avrocompat: writing json value: %w", err)
			}
			return nil
		},
	}, nil
}

// NewJSONEncoderFromGenerator returns an encoder for schema emitting each
// value through enc.
func NewJSONEncoderFromGenerator(schema avro.Schema, enc *json.Encoder) (*JSONEncoder, error) {
	codec, err := newCodec(schema)
	if err != nil {
		return nil, err
	}
	return &JSONEncoder{
		codec: codec,
		emit: func(b []byte) error {
			if err := enc.Encode(json.RawMessage(b)); err != nil {
				return fmt.Errorf("avrocompat: writing json value: %w", err)
			}
			return nil
		},
	}, nil
}

// Encode writes v.
func (e *JSONEncoder) Encode(v any) error {
	b, err := e.codec.TextualFromNative(nil, v)
	if err != nil {
		return fmt.Errorf("avrocompat: encoding json value: %w", err)
	}
	return e.emit(b)
}

// JSONDecoder reads values in the Avro JSON encoding.
type JSONDecoder struct {
	codec *goavro.Codec
	dec   *json.Decoder
}

// NewJSONDecoder returns a decoder for schema reading from r.
func NewJSONDecoder(schema avro.Schema, r io.Reader) (*JSONDecoder, error) {
	codec, err := newCodec(schema)
	if err != nil {
		return nil, err
	}
	return &JSONDecoder{codec: codec, dec: json.NewDecoder(r)}, nil
}

// NewJSONDecoderFromString returns a decoder for schema reading from s.
func NewJSONDecoderFromString(schema avro.Schema, s string) (*JSONDecoder, error) {
	return NewJSONDecoder(schema, strings.NewReader(s))
}

// Decode reads the next value. It returns io.EOF when the input is
// exhausted.
func (d *JSONDecoder) Decode() (any, error) {
	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("avrocompat: reading json value: %w", err)
	}
	v, _, err := d.codec.NativeFromTextual(raw)
	if err != nil {
		return nil, fmt.Errorf("avrocompat: decoding json value: %w", err)
	}
	return v, nil
}

func newCodec(schema avro.Schema) (*goavro.Codec, error) {
	codec, err := goavro.NewCodec(schema.String())
	if err != nil {
		return nil, NewSchemaError(fullName(schema), err)
	}
	return codec, nil
}

// EnumSymbol is an enum value. Schema is nil for values built without
// schema binding.
type EnumSymbol struct {
	Schema *avro.EnumSchema
	Symbol string
}

// NewEnumSymbol returns the value of schema named symbol. It fails with a
// *ValidationError if symbol is not one of the schema's symbols.
func NewEnumSymbol(schema *avro.EnumSchema, symbol string) (EnumSymbol, error) {
	if !slices.Contains(schema.Symbols(), symbol) {
		return EnumSymbol{}, NewValidationError(schema.FullName(), fmt.Errorf("unknown symbol %q", symbol))
	}
	return EnumSymbol{Schema: schema, Symbol: symbol}, nil
}

// UnboundEnumSymbol returns an enum value that is not tied to a schema.
func UnboundEnumSymbol(symbol string) EnumSymbol {
	return EnumSymbol{Symbol: symbol}
}

// String returns the symbol.
func (e EnumSymbol) String() string {
	return e.Symbol
}

// Fixed is a fixed-size value. Schema is nil for values built without
// schema binding.
type Fixed struct {
	Schema *avro.FixedSchema
	bytes  []byte
}

// NewFixed returns a value of schema holding a copy of contents. A nil
// contents yields a zero-filled value. It fails with a *ValidationError when
// the length of contents differs from the schema size.
func NewFixed(schema *avro.FixedSchema, contents []byte) (Fixed, error) {
	if contents == nil {
		return Fixed{Schema: schema, bytes: make([]byte, schema.Size())}, nil
	}
	if len(contents) != schema.Size() {
		return Fixed{}, NewValidationError(schema.FullName(), fmt.Errorf("got %d bytes, want %d", len(contents), schema.Size()))
	}
	return Fixed{Schema: schema, bytes: bytes.Clone(contents)}, nil
}

// UnboundFixed returns a fixed value that is not tied to a schema.
func UnboundFixed(contents []byte) Fixed {
	return Fixed{bytes: bytes.Clone(contents)}
}

// Bytes returns a copy of the contents.
func (f Fixed) Bytes() []byte {
	return bytes.Clone(f.bytes)
}

// Size returns the number of bytes held.
func (f Fixed) Size() int {
	return len(f.bytes)
}
