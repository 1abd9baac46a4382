// Package idgen supplies the opaque item and saved-layout identifiers.
// Constructors that need ids take a Generator so tests can swap in a
// deterministic one.
package idgen

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Generator produces a fresh identifier on every call.
type Generator func() string

// UUIDv7 returns a Generator of time-ordered RFC 9562 UUID strings.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Sequence returns a Generator yielding prefix1, prefix2, ... Safe for
// concurrent use.
func Sequence(prefix string) Generator {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + strconv.Itoa(n)
	}
}

// Prefixed prepends prefix to every id gen returns.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Default is used wherever a nil Generator is passed.
var Default Generator = UUIDv7()

// New returns an id from Default.
func New() string {
	return Default()
}

// OrDefault returns gen, or Default when gen is nil.
func OrDefault(gen Generator) Generator {
	if gen == nil {
		return Default
	}
	return gen
}

// Parse checks that s is a UUID and returns its canonical form.
func Parse(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid UUID: %w", err)
	}
	return u.String(), nil
}
