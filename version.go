package avrocompat

import (
	"cmp"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Well-known Avro releases.
var (
	Avro14 = MustParseVersion("1.4")
	Avro15 = MustParseVersion("1.5")
	Avro16 = MustParseVersion("1.6")
	Avro17 = MustParseVersion("1.7")
	Avro18 = MustParseVersion("1.8")
)

// Version identifies an Avro release. Ordering only considers the major and
// minor components, so 1.7.7 and 1.7.0 are the same release line.
//
// The zero Version means "no target": compilation returns the generator
// output unchanged.
type Version struct {
	v *semver.Version
}

// ParseVersion parses a release identifier such as "1.7" or "1.7.7".
func ParseVersion(s string) (Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("avrocompat: invalid release %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare returns -1, 0 or 1 if v is earlier than, the same release as, or
// later than o. The zero Version sorts before every release.
func (v Version) Compare(o Version) int {
	switch {
	case v.IsZero() && o.IsZero():
		return 0
	case v.IsZero():
		return -1
	case o.IsZero():
		return 1
	}
	if c := cmp.Compare(v.v.Major(), o.v.Major()); c != 0 {
		return c
	}
	return cmp.Compare(v.v.Minor(), o.v.Minor())
}

// EarlierThan reports whether v is an earlier release than o.
func (v Version) EarlierThan(o Version) bool {
	return v.Compare(o) < 0
}

// AtLeast reports whether v is o or a later release.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// Equal reports whether v and o name the same release line.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// String returns the "major.minor" form, or "" for the zero Version.
func (v Version) String() string {
	if v.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d.%d", v.v.Major(), v.v.Minor())
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the
// zero Version.
func (v *Version) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*v = Version{}
		return nil
	}
	p, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}
