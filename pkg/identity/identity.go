package identity

import (
	"errors"

	"github.com/cespare/xxhash/v2"
)

// ErrEmptyName is returned when an identity is built from an empty name
var ErrEmptyName = errors.New("identity name cannot be empty")

// Identity is the self-reported name a discovery agent advertises.
// The zero value is not a valid identity; use New.
type Identity struct {
	name string
}

// New returns an Identity for the given display name
func New(name string) (Identity, error) {
	if name == "" {
		return Identity{}, ErrEmptyName
	}
	return Identity{name: name}, nil
}

// Name returns the display name
func (id Identity) Name() string {
	return id.name
}

// Equal reports whether both identities carry the same name
func (id Identity) Equal(other Identity) bool {
	return id.name == other.name
}

// Hash returns a stable 64-bit hash of the name
func (id Identity) Hash() uint64 {
	return xxhash.Sum64String(id.name)
}

// IsZero reports whether id was never initialized
func (id Identity) IsZero() bool {
	return id.name == ""
}

func (id Identity) String() string {
	return id.name
}
