// internal/cli/console.go
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Console is the line-oriented terminal used by the interactive menu.
type Console struct {
	in  *LineReader
	out io.Writer
}

// NewConsole creates a console reading from in and writing to out,
// defaulting to stdin and stdout.
func NewConsole(in io.Reader, out io.Writer) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Console{in: NewLineReader(in), out: out}
}

// Writer returns the output stream, for renderers that print tables directly.
func (c *Console) Writer() io.Writer {
	return c.out
}

// Ask prints prompt and returns the trimmed answer.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	c.print(FormatPrompt(prompt))
	return c.in.ReadLine(ctx)
}

// Confirm asks a yes/no question. Only "y" or "yes", in any case, confirm.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := c.Ask(ctx, question+" (y/n)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Title prints a section title preceded by a blank line.
func (c *Console) Title(title string) {
	c.println("\n" + FormatTitle(title))
}

func (c *Console) Success(message string) { c.println(FormatSuccess(message)) }
func (c *Console) Error(message string)   { c.println(FormatError(message)) }
func (c *Console) Warn(message string)    { c.println(FormatWarning(message)) }
func (c *Console) Info(message string)    { c.println(FormatInfo(message)) }

// Println writes plain text followed by a newline.
func (c *Console) Println(text string) {
	c.println(text)
}

func (c *Console) print(text string) {
	if _, err := fmt.Fprint(c.out, text); err != nil {
		slog.Warn("Failed to write to console", "error", err)
	}
}

func (c *Console) println(text string) {
	if _, err := fmt.Fprintln(c.out, text); err != nil {
		slog.Warn("Failed to write to console", "error", err)
	}
}
