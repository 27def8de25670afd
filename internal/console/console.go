// Package console handles operator-facing text: prompts, repository tables and the fuzzy picker.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console reads answers line by line from in and writes everything to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Out returns the output stream.
func (c *Console) Out() io.Writer {
	return c.out
}

// Ask prints prompt and returns the next input line without its line ending.
// io.EOF is returned only when no text at all was read.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// AskTrimmed is Ask with surrounding whitespace removed.
func (c *Console) AskTrimmed(prompt string) (string, error) {
	answer, err := c.Ask(prompt)
	return strings.TrimSpace(answer), err
}

// AskYesNo returns true only for "y" or "yes", ignoring case.
func (c *Console) AskYesNo(prompt string) (bool, error) {
	answer, err := c.AskTrimmed(prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Printf writes formatted text to the output.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Println writes a line to the output.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Banner prints a title between two rules.
func (c *Console) Banner(title string) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, title)
	fmt.Fprintln(c.out, rule)
}
