// Package avro18 is the adapter for Avro 1.8.
//
// Records and fixed types generated by 1.8 implement Externalizable through
// SpecificData factories; for earlier targets those calls are routed through
// the compatibility helper instead.
package avro18

import (
	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/adapter"
)

// Release is the release this package adapts.
var Release = avrocompat.Avro18

func init() {
	adapter.Register(Release, func(opts ...adapter.Option) (avrocompat.Adapter, error) {
		return New(opts...)
	})
}

// Adapter is the Avro 1.8 adapter.
type Adapter struct {
	*adapter.Base
}

// New returns the Avro 1.8 adapter.
func New(opts ...adapter.Option) (*Adapter, error) {
	base, err := adapter.NewBase(Release, opts...)
	if err != nil {
		return nil, err
	}
	return &Adapter{Base: base}, nil
}
