package output

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"zero-pass/internal/locale"
)

// Sink delivers a derived password to the user.
type Sink interface {
	Deliver(password string) error
	// Name identifies the sink in run history.
	Name() string
}

// Options selects a Sink.
type Options struct {
	Show      bool   // print instead of copying
	EncryptTo string // age recipient; takes precedence over Show
}

// NewSinkFromOptions returns the Sink matching opts. Results go to w; the age
// sink writes its notice to notice so that w holds only the armored message.
func NewSinkFromOptions(opts Options, w, notice io.Writer, mess *locale.Messages) (Sink, error) {
	switch {
	case opts.EncryptTo != "":
		return NewAgeSink(opts.EncryptTo, w, notice, mess)
	case opts.Show:
		return NewStdoutSink(w, mess), nil
	default:
		return NewClipboardSink(w, mess), nil
	}
}

// StdoutSink prints the password.
type StdoutSink struct {
	w    io.Writer
	mess *locale.Messages
}

var _ Sink = (*StdoutSink)(nil)

func NewStdoutSink(w io.Writer, mess *locale.Messages) *StdoutSink {
	return &StdoutSink{w: w, mess: mess}
}

func (s *StdoutSink) Name() string { return "stdout" }

func (s *StdoutSink) Deliver(password string) error {
	if _, err := fmt.Fprintf(s.w, "%s \"%s\"\n", s.mess.FinalResultShow, password); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// ClipboardSink copies the password to the system clipboard.
type ClipboardSink struct {
	w     io.Writer
	mess  *locale.Messages
	write func(string) error
}

var _ Sink = (*ClipboardSink)(nil)

func NewClipboardSink(w io.Writer, mess *locale.Messages) *ClipboardSink {
	return &ClipboardSink{w: w, mess: mess, write: clipboard.WriteAll}
}

func (s *ClipboardSink) Name() string { return "clipboard" }

func (s *ClipboardSink) Deliver(password string) error {
	if err := s.write(password); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	fmt.Fprintln(s.w, s.mess.FinalResult)
	return nil
}
