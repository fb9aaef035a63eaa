package zeropass

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultMethodName is used when no method is selected.
const DefaultMethodName = "Base64"

var (
	ErrUnknownMethod    = errors.New("unknown method")
	ErrInvalidCharacter = errors.New("invalid character")
)

// Method derives a password from the unique and variable secrets.
// Implementations must be deterministic.
type Method interface {
	Name() string
	Apply(unique, variable string) (string, error)
}

var registry = map[string]Method{}

func register(m Method) {
	if _, ok := registry[m.Name()]; ok {
		panic(fmt.Sprintf("zeropass: method %q registered twice", m.Name()))
	}
	registry[m.Name()] = m
}

func init() {
	register(base64Method{})
	register(xorMethod{})
	register(vigenereMethod{})
	register(hashMethod{})
	register(hmacMethod{})
	register(argon2Method{})
	register(scryptMethod{})
}

// Methods returns the names of all registered methods, sorted.
func Methods() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMethod looks up a method by its exact name.
func GetMethod(name string) (Method, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return m, nil
}
