// Package console reads user input from a line-oriented terminal and writes
// the one-line outcome markers every dialog ends with.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pizzastore/errs"
)

const (
	ChoicePrompt  = "Please make your choice: "
	InvalidInput  = "Your input is invalid!"
	successMarker = "✅ "
	failureMarker = "❌ "
)

// Reader is a line-buffered keyboard source. Prompts go to the same writer
// the dialogs render to.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

// Out is the writer prompts and dialogs share.
func (r *Reader) Out() io.Writer {
	return r.out
}

// Line prints prompt and returns the next line with surrounding whitespace
// trimmed. io.EOF is returned only when no more input exists.
func (r *Reader) Line(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Int reads one integer. Malformed text is an ErrInputParse.
func (r *Reader) Int(prompt string) (int, error) {
	line, err := r.Line(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInputParse, line)
	}
	return n, nil
}

// Choice re-prompts until an integer is entered.
func (r *Reader) Choice(prompt string) (int, error) {
	if prompt == "" {
		prompt = ChoicePrompt
	}
	for {
		n, err := r.Int(prompt)
		if errors.Is(err, errs.ErrInputParse) {
			fmt.Fprintln(r.out, InvalidInput)
			continue
		}
		return n, err
	}
}

// Until re-prompts until check accepts the line, printing hint after every
// rejection.
func (r *Reader) Until(prompt, hint string, check func(string) error) (string, error) {
	for {
		line, err := r.Line(prompt)
		if err != nil {
			return "", err
		}
		if check(line) == nil {
			return line, nil
		}
		fmt.Fprintln(r.out, hint)
	}
}

// Success writes a one-line success message.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successMarker+fmt.Sprintf(format, args...))
}

// Fail writes a one-line failure message.
func Fail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, failureMarker+fmt.Sprintf(format, args...))
}

// Title writes a blank line and a dialog heading.
func Title(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

// Menu writes numbered options under a heading.
func Menu(w io.Writer, title string, options ...string) {
	Title(w, title)
	for _, o := range options {
		fmt.Fprintln(w, o)
	}
}
