package zeropass

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 16
	keyLength  = 32

	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

type base64Method struct{}

func (base64Method) Name() string { return "Base64" }

func (base64Method) Apply(unique, variable string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(unique + variable)), nil
}

// xorMethod XORs the variable secret with the unique secret repeated as a key.
type xorMethod struct{}

func (xorMethod) Name() string { return "Xor" }

func (xorMethod) Apply(unique, variable string) (string, error) {
	if unique == "" {
		return "", ErrMissingSecret
	}
	key := []byte(unique)
	out := []byte(variable)
	for i := range out {
		out[i] ^= key[i%len(key)]
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// vigenereMethod shifts each printable ASCII character of the variable secret
// by the matching character of the unique secret.
type vigenereMethod struct{}

const (
	printableFirst = 0x20
	printableLast  = 0x7e
	printableRange = printableLast - printableFirst + 1
)

func (vigenereMethod) Name() string { return "Vigenere" }

func (vigenereMethod) Apply(unique, variable string) (string, error) {
	if unique == "" {
		return "", ErrMissingSecret
	}
	for i := 0; i < len(unique); i++ {
		if unique[i] < printableFirst || unique[i] > printableLast {
			return "", fmt.Errorf("%w: %q in unique password", ErrInvalidCharacter, unique[i])
		}
	}

	out := make([]byte, len(variable))
	for i := 0; i < len(variable); i++ {
		c := variable[i]
		if c < printableFirst || c > printableLast {
			return "", fmt.Errorf("%w: %q in variable password", ErrInvalidCharacter, c)
		}
		shift := unique[i%len(unique)] - printableFirst
		out[i] = printableFirst + (c-printableFirst+shift)%printableRange
	}
	return string(out), nil
}

type hashMethod struct{}

func (hashMethod) Name() string { return "Hash" }

func (hashMethod) Apply(unique, variable string) (string, error) {
	h := sha256.New()
	h.Write([]byte(unique))
	h.Write([]byte{0})
	h.Write([]byte(variable))
	return hex.EncodeToString(h.Sum(nil)), nil
}

type hmacMethod struct{}

func (hmacMethod) Name() string { return "Hmac" }

func (hmacMethod) Apply(unique, variable string) (string, error) {
	mac := hmac.New(sha256.New, []byte(unique))
	mac.Write([]byte(variable))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

type argon2Method struct{}

func (argon2Method) Name() string { return "Argon2" }

func (argon2Method) Apply(unique, variable string) (string, error) {
	key := argon2.IDKey([]byte(unique), salt(variable), argon2Time, argon2Memory, argon2Threads, keyLength)
	return base64.RawStdEncoding.EncodeToString(key), nil
}

type scryptMethod struct{}

func (scryptMethod) Name() string { return "Scrypt" }

func (scryptMethod) Apply(unique, variable string) (string, error) {
	key, err := scrypt.Key([]byte(unique), salt(variable), scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("deriving scrypt key: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(key), nil
}

// salt derives a fixed-size salt from the variable secret so that the
// key-derivation methods stay deterministic.
func salt(variable string) []byte {
	sum := sha256.Sum256([]byte(variable))
	return sum[:saltLength]
}
