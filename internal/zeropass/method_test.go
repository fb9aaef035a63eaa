package zeropass

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"sort"
	"testing"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/scrypt"
)

func TestMethods_SortedAndComplete(t *testing.T) {
	names := Methods()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Methods() = %v, want sorted", names)
	}

	want := []string{"Argon2", "Base64", "Hash", "Hmac", "Scrypt", "Vigenere", "Xor"}
	if len(names) != len(want) {
		t.Fatalf("len(Methods()) = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Methods()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestGetMethod(t *testing.T) {
	t.Run("known method", func(t *testing.T) {
		m, err := GetMethod("Hash")
		if err != nil {
			t.Fatalf("GetMethod() error = %v", err)
		}
		if m.Name() != "Hash" {
			t.Errorf("Name() = %q, want %q", m.Name(), "Hash")
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := GetMethod("Rot13")
		if !errors.Is(err, ErrUnknownMethod) {
			t.Errorf("GetMethod() error = %v, want ErrUnknownMethod", err)
		}
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		_, err := GetMethod("base64")
		if !errors.Is(err, ErrUnknownMethod) {
			t.Errorf("GetMethod() error = %v, want ErrUnknownMethod", err)
		}
	})
}

func TestMethods_Deterministic(t *testing.T) {
	for _, name := range Methods() {
		t.Run(name, func(t *testing.T) {
			m, err := GetMethod(name)
			if err != nil {
				t.Fatalf("GetMethod() error = %v", err)
			}

			first, err := m.Apply("my-unique", "github.com")
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			second, err := m.Apply("my-unique", "github.com")
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if first != second {
				t.Errorf("Apply() not deterministic: %q != %q", first, second)
			}

			other, err := m.Apply("my-unique", "gitlab.com")
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if other == first {
				t.Errorf("Apply() returned %q for different variable passwords", first)
			}
		})
	}
}

func TestBase64Method(t *testing.T) {
	got, err := base64Method{}.Apply("abc", "def")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if want := base64.StdEncoding.EncodeToString([]byte("abcdef")); got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestXorMethod(t *testing.T) {
	got, err := xorMethod{}.Apply("\x01", "ab")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if want := base64.StdEncoding.EncodeToString([]byte("`c")); got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}

	// The key is cycled over the longer variable password.
	got, err = xorMethod{}.Apply("\x01\x02", "abcde")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if want := base64.StdEncoding.EncodeToString([]byte{'a' ^ 1, 'b' ^ 2, 'c' ^ 1, 'd' ^ 2, 'e' ^ 1}); got != want {
		t.Errorf("Apply() with cycled key = %q, want %q", got, want)
	}

	if _, err := (xorMethod{}).Apply("", "ab"); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Apply() with empty key error = %v, want ErrMissingSecret", err)
	}
}

func TestVigenereMethod(t *testing.T) {
	tests := []struct {
		name     string
		unique   string
		variable string
		want     string
		wantErr  error
	}{
		{name: "space key is identity", unique: " ", variable: "hello", want: "hello"},
		{name: "shift by one", unique: "!", variable: "abc", want: "bcd"},
		{name: "wraps at tilde", unique: "!", variable: "~", want: " "},
		{name: "rejects non-ascii variable", unique: "key", variable: "senhaú", wantErr: ErrInvalidCharacter},
		{name: "rejects control character in unique", unique: "k\tey", variable: "abc", wantErr: ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vigenereMethod{}.Apply(tt.unique, tt.variable)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHashMethod_KnownValue(t *testing.T) {
	got, err := hashMethod{}.Apply("a", "b")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	sum := sha256.Sum256([]byte("a\x00b"))
	if want := hex.EncodeToString(sum[:]); got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}

	// The separator keeps ("ab", "c") and ("a", "bc") apart.
	left, _ := hashMethod{}.Apply("ab", "c")
	right, _ := hashMethod{}.Apply("a", "bc")
	if left == right {
		t.Error("Apply() collides across the unique/variable boundary")
	}
}

func TestHmacMethod_KnownValue(t *testing.T) {
	got, err := hmacMethod{}.Apply("my-unique", "github.com")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	mac := hmac.New(sha256.New, []byte("my-unique"))
	mac.Write([]byte("github.com"))
	want := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
	if len(got) != 43 {
		t.Errorf("len(Apply()) = %d, want 43 unpadded base64url chars", len(got))
	}
}

// derivationSalt mirrors the salt rule: the first 16 bytes of sha256(variable).
func derivationSalt(variable string) []byte {
	sum := sha256.Sum256([]byte(variable))
	return sum[:16]
}

func TestArgon2Method_KnownValue(t *testing.T) {
	got, err := argon2Method{}.Apply("my-unique", "github.com")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	key := argon2.IDKey([]byte("my-unique"), derivationSalt("github.com"), 1, 64*1024, 4, 32)
	if want := base64.RawStdEncoding.EncodeToString(key); got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestScryptMethod_KnownValue(t *testing.T) {
	got, err := scryptMethod{}.Apply("my-unique", "github.com")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	key, err := scrypt.Key([]byte("my-unique"), derivationSalt("github.com"), 32768, 8, 1, 32)
	if err != nil {
		t.Fatalf("scrypt.Key() error = %v", err)
	}
	if want := base64.RawStdEncoding.EncodeToString(key); got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}
