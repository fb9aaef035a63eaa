package zeropass

import (
	"errors"
	"testing"
)

func TestPasswordBuilder_DefaultsToBase64Once(t *testing.T) {
	got, err := NewPasswordBuilder().Unique("abc").Variable("def").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want, _ := base64Method{}.Apply("abc", "def")
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestPasswordBuilder_Repeat(t *testing.T) {
	m, err := GetMethod("Hash")
	if err != nil {
		t.Fatalf("GetMethod() error = %v", err)
	}

	got, err := NewPasswordBuilder().Unique("u").Variable("v").Method(m).Repeat(3).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := "v"
	for i := 0; i < 3; i++ {
		want, _ = m.Apply("u", want)
	}
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestPasswordBuilder_MethodName(t *testing.T) {
	b, err := NewPasswordBuilder().Unique("u").Variable("v").MethodName("Hmac")
	if err != nil {
		t.Fatalf("MethodName() error = %v", err)
	}
	got, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want, _ := hmacMethod{}.Apply("u", "v")
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}

	if _, err := NewPasswordBuilder().MethodName("Nope"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("MethodName() error = %v, want ErrUnknownMethod", err)
	}
}

func TestPasswordBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *PasswordBuilder
		wantErr error
	}{
		{name: "missing unique", builder: NewPasswordBuilder().Variable("v"), wantErr: ErrMissingSecret},
		{name: "missing variable", builder: NewPasswordBuilder().Unique("u"), wantErr: ErrMissingSecret},
		{name: "zero repeat", builder: NewPasswordBuilder().Unique("u").Variable("v").Repeat(0), wantErr: ErrInvalidRepeat},
		{
			name:    "method failure propagates",
			builder: NewPasswordBuilder().Unique("u").Variable("á").Method(vigenereMethod{}),
			wantErr: ErrInvalidCharacter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
