package adapter

import (
	"fmt"
	"slices"
	"sync"

	"github.com/syssam/avrocompat"
)

// Factory creates the adapter of one release.
type Factory func(opts ...Option) (avrocompat.Adapter, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes a release adapter available to Open. It is meant to be
// called from the init function of a release package and panics if the
// release is registered twice.
func Register(release avrocompat.Version, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	key := release.String()
	if _, dup := factories[key]; dup {
		panic("adapter: Register called twice for release " + key)
	}
	factories[key] = f
}

// Open returns the adapter registered for release.
func Open(release avrocompat.Version, opts ...Option) (avrocompat.Adapter, error) {
	mu.RLock()
	f, ok := factories[release.String()]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("adapter: no adapter registered for avro %q (forgotten import?)", release.String())
	}
	return f(opts...)
}

// Releases returns the registered releases in ascending order.
func Releases() []avrocompat.Version {
	mu.RLock()
	defer mu.RUnlock()
	releases := make([]avrocompat.Version, 0, len(factories))
	for key := range factories {
		releases = append(releases, avrocompat.MustParseVersion(key))
	}
	slices.SortFunc(releases, avrocompat.Version.Compare)
	return releases
}
