// Package avro16 is the adapter for Avro 1.6, the first release to generate
// record builders. Builders are removed when targeting an earlier release.
package avro16

import (
	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/adapter"
)

// Release is the release this package adapts.
var Release = avrocompat.Avro16

func init() {
	adapter.Register(Release, func(opts ...adapter.Option) (avrocompat.Adapter, error) {
		return New(opts...)
	})
}

// Adapter is the Avro 1.6 adapter.
type Adapter struct {
	*adapter.Base
}

// New returns the Avro 1.6 adapter.
func New(opts ...adapter.Option) (*Adapter, error) {
	base, err := adapter.NewBase(Release, opts...)
	if err != nil {
		return nil, err
	}
	return &Adapter{Base: base}, nil
}
