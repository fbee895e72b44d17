package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// constructors maps algorithm names to digest constructors. The set is
// closed: algorithm selection is validated against it at the CLI boundary
// before any file is opened.
var constructors = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
	"blake3": func() hash.Hash { return blake3.New() },
}

// DefaultAlgorithm is used when no algorithm is selected
const DefaultAlgorithm = "sha256"

// UnsupportedAlgorithmError indicates an algorithm name outside the registry
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported hash algorithm: %s (valid: %s)", e.Name, strings.Join(Supported(), ", "))
}

// Supported returns the registered algorithm names in sorted order
func Supported() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether an algorithm name is registered
func IsSupported(name string) bool {
	_, ok := constructors[name]
	return ok
}

// New creates a digest instance for the named algorithm
func New(name string) (hash.Hash, error) {
	constructor, ok := constructors[name]
	if !ok {
		return nil, &UnsupportedAlgorithmError{Name: name}
	}
	return constructor(), nil
}
