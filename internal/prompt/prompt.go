package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var (
	// ErrNoInput is returned when the input stream ends before an answer.
	ErrNoInput = errors.New("no input")
	// ErrInvalidChoice is returned by Select for answers matching no option.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Prompter asks the user for values.
type Prompter interface {
	Input(msg string) (string, error)
	// Password reads a value without echoing it when possible.
	Password(msg string) (string, error)
	// Confirm returns true for y, Y, s or S.
	Confirm(msg string) (bool, error)
	// Select shows a numbered menu and returns the chosen option.
	Select(msg string, options []string) (string, error)
}

// Terminal implements Prompter over a reader and a writer.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal creates a Terminal. When in is a terminal file, Password
// disables echo.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.tty = true
	}
	return t
}

func (t *Terminal) Input(msg string) (string, error) {
	fmt.Fprintf(t.out, "%s ", msg)
	return t.readLine()
}

func (t *Terminal) Password(msg string) (string, error) {
	if !t.tty {
		return t.Input(msg)
	}

	fmt.Fprintf(t.out, "%s ", msg)
	b, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (t *Terminal) Confirm(msg string) (bool, error) {
	answer, err := t.Input(msg)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (t *Terminal) Select(msg string, options []string) (string, error) {
	fmt.Fprintln(t.out, msg)
	for i, o := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, o)
	}

	answer, err := t.Input(">")
	if err != nil {
		return "", err
	}
	return Choose(answer, options)
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// IsYes reports whether answer is an affirmative in English or Portuguese.
func IsYes(answer string) bool {
	switch strings.TrimSpace(answer) {
	case "y", "Y", "s", "S":
		return true
	default:
		return false
	}
}

// Choose resolves a menu answer, given either as a 1-based index or as an
// option name, against options.
func Choose(answer string, options []string) (string, error) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("%w: %d", ErrInvalidChoice, n)
		}
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChoice, answer)
}
