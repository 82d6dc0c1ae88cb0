// Package avro15 is the adapter for Avro 1.5.
//
// Targeting 1.4, generated fixed classes lose the byte[] super call and
// oversized schema literals are split.
package avro15

import (
	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/adapter"
)

// Release is the release this package adapts.
var Release = avrocompat.Avro15

func init() {
	adapter.Register(Release, func(opts ...adapter.Option) (avrocompat.Adapter, error) {
		return New(opts...)
	})
}

// Adapter is the Avro 1.5 adapter.
type Adapter struct {
	*adapter.Base
}

// New returns the Avro 1.5 adapter.
func New(opts ...adapter.Option) (*Adapter, error) {
	base, err := adapter.NewBase(Release, opts...)
	if err != nil {
		return nil, err
	}
	return &Adapter{Base: base}, nil
}
