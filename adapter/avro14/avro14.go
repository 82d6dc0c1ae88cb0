// Package avro14 is the adapter for Avro 1.4.
//
// Avro 1.4 enum symbols and pre-filled fixed values carry no schema, so the
// adapter neither binds nor checks them.
package avro14

import (
	"github.com/hamba/avro/v2"

	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/adapter"
)

// Release is the release this package adapts.
var Release = avrocompat.Avro14

func init() {
	adapter.Register(Release, func(opts ...adapter.Option) (avrocompat.Adapter, error) {
		return New(opts...)
	})
}

// Adapter is the Avro 1.4 adapter.
type Adapter struct {
	*adapter.Base
}

// New returns the Avro 1.4 adapter.
func New(opts ...adapter.Option) (*Adapter, error) {
	base, err := adapter.NewBase(Release, opts...)
	if err != nil {
		return nil, err
	}
	return &Adapter{Base: base}, nil
}

// NewEnumSymbol returns an unbound symbol; symbol is not checked.
func (a *Adapter) NewEnumSymbol(_ *avro.EnumSchema, symbol string) (avrocompat.EnumSymbol, error) {
	return avrocompat.UnboundEnumSymbol(symbol), nil
}

// NewFixedWithContents returns an unbound value; the size is not checked.
func (a *Adapter) NewFixedWithContents(_ *avro.FixedSchema, contents []byte) (avrocompat.Fixed, error) {
	return avrocompat.UnboundFixed(contents), nil
}
