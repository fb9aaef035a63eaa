package output

import (
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"

	"zero-pass/internal/locale"
)

// AgeSink writes the password as an ASCII-armored age message encrypted to a
// single X25519 recipient.
type AgeSink struct {
	w         io.Writer
	notice    io.Writer
	mess      *locale.Messages
	recipient age.Recipient
}

var _ Sink = (*AgeSink)(nil)

// NewAgeSink parses recipient ("age1...") and returns a sink encrypting to it.
func NewAgeSink(recipient string, w, notice io.Writer, mess *locale.Messages) (*AgeSink, error) {
	r, err := age.ParseX25519Recipient(strings.TrimSpace(recipient))
	if err != nil {
		return nil, fmt.Errorf("parsing age recipient: %w", err)
	}
	return &AgeSink{w: w, notice: notice, mess: mess, recipient: r}, nil
}

func (s *AgeSink) Name() string { return "age" }

func (s *AgeSink) Deliver(password string) error {
	armorWriter := armor.NewWriter(s.w)

	encWriter, err := age.Encrypt(armorWriter, s.recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}

	if _, err := io.WriteString(encWriter, password); err != nil {
		return fmt.Errorf("encrypting password: %w", err)
	}

	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return fmt.Errorf("finalizing armor: %w", err)
	}

	fmt.Fprintln(s.notice, s.mess.FinalResultEncrypted)
	return nil
}
