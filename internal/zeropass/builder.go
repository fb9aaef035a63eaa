package zeropass

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSecret = errors.New("unique and variable passwords are required")
	ErrInvalidRepeat = errors.New("repeat count must be at least 1")
)

// PasswordBuilder collects the inputs of a derivation. The zero value is not
// usable; start from NewPasswordBuilder.
type PasswordBuilder struct {
	unique   string
	variable string
	method   Method
	repeat   uint8
}

// NewPasswordBuilder returns a builder using the default method once.
func NewPasswordBuilder() *PasswordBuilder {
	return &PasswordBuilder{repeat: 1}
}

func (b *PasswordBuilder) Unique(u string) *PasswordBuilder {
	b.unique = u
	return b
}

func (b *PasswordBuilder) Variable(v string) *PasswordBuilder {
	b.variable = v
	return b
}

func (b *PasswordBuilder) Method(m Method) *PasswordBuilder {
	b.method = m
	return b
}

// MethodName selects a registered method by name.
func (b *PasswordBuilder) MethodName(name string) (*PasswordBuilder, error) {
	m, err := GetMethod(name)
	if err != nil {
		return b, err
	}
	b.method = m
	return b, nil
}

func (b *PasswordBuilder) Repeat(n uint8) *PasswordBuilder {
	b.repeat = n
	return b
}

// Build applies the method repeat times. Each round feeds its output back as
// the variable secret of the next round.
func (b *PasswordBuilder) Build() (string, error) {
	if b.unique == "" || b.variable == "" {
		return "", ErrMissingSecret
	}
	if b.repeat == 0 {
		return "", ErrInvalidRepeat
	}

	m := b.method
	if m == nil {
		m = registry[DefaultMethodName]
	}

	result := b.variable
	for i := uint8(0); i < b.repeat; i++ {
		out, err := m.Apply(b.unique, result)
		if err != nil {
			return "", fmt.Errorf("applying %s (round %d): %w", m.Name(), i+1, err)
		}
		result = out
	}
	return result, nil
}
