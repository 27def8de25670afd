package usecase

import (
	"fmt"
	"io"
	"strings"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

// ConfirmPhrase must be typed verbatim before anything is deleted.
const ConfirmPhrase = "DELETE"

// Prompter asks the operator a question and returns the answer line without its line ending.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// Gate is the confirmation step in front of every deletion batch.
type Gate struct {
	prompter Prompter
	out      io.Writer
}

// NewGate creates a new Gate instance.
func NewGate(prompter Prompter, out io.Writer) *Gate {
	return &Gate{prompter: prompter, out: out}
}

// Confirm shows the selection, then requires the username and ConfirmPhrase in turn.
// Both comparisons are exact and case-sensitive. A single mismatch returns false.
func (g *Gate) Confirm(selected []domain.Repository, username string) (bool, error) {
	if len(selected) == 0 {
		return false, nil
	}

	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, strings.Repeat("=", 80))
	fmt.Fprintln(g.out, "WARNING: the following repositories will be deleted. This cannot be undone!")
	fmt.Fprintln(g.out, strings.Repeat("=", 80))
	for i, r := range selected {
		fmt.Fprintf(g.out, "%d. %s (%s)\n", i+1, r.FullName, r.Visibility())
	}
	fmt.Fprintf(g.out, "\nTotal: %d repositories\n\n", len(selected))

	typed, err := g.prompter.Ask(fmt.Sprintf("1. Type your GitHub username '%s' to confirm: ", username))
	if err != nil {
		return false, err
	}
	if typed != username {
		fmt.Fprintln(g.out, "\n✗ Username does not match, cancelled.")
		return false, nil
	}

	typed, err = g.prompter.Ask(fmt.Sprintf("\n2. Type '%s' to confirm deletion: ", ConfirmPhrase))
	if err != nil {
		return false, err
	}
	if typed != ConfirmPhrase {
		fmt.Fprintln(g.out, "\n✗ Confirmation failed, cancelled.")
		return false, nil
	}
	return true, nil
}
