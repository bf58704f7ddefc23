package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// Compact produces short lowercase hex tokens cut from a random (v4) UUID.
// Uniqueness is best-effort and only needs to hold within one local history.
type Compact struct{}

const compactLength = 16

func (Compact) New() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:compactLength]
}
