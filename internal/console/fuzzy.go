package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	fzf "github.com/junegunn/fzf/src"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// Picker lets the operator mark repositories in fzf.
type Picker struct {
	runner FzfRunner
}

// NewPicker creates a Picker backed by the real fzf.
func NewPicker() *Picker {
	return &Picker{runner: &DefaultFzfRunner{}}
}

// NewPickerWithRunner creates a Picker with a custom runner (for testing)
func NewPickerWithRunner(runner FzfRunner) *Picker {
	return &Picker{runner: runner}
}

// Pick returns the sorted 0-based indices the operator marked.
// A cancelled or empty pick returns no indices and no error.
func (p *Picker) Pick(repos []domain.Repository) ([]int, error) {
	if len(repos) == 0 {
		return nil, nil
	}
	opts, err := fzf.ParseOptions(true, []string{
		"--multi",
		"--prompt=delete> ",
		"--header=TAB to mark, ENTER to accept, ESC to cancel",
		"--delimiter=\t",
		"--with-nth=2..",
		"--height=40%",
		"--layout=reverse",
		"--no-mouse",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse fzf options: %w", err)
	}

	// Both channels are sized so fzf never blocks on them.
	input := make(chan string, len(repos))
	for i, r := range repos {
		input <- fmt.Sprintf("%d\t%s\t[%s]\t%s", i+1, r.FullName, r.Visibility(), r.Description)
	}
	close(input)
	output := make(chan string, len(repos))
	opts.Input = input
	opts.Output = output

	exitCode, err := p.runner.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("fzf failed: %w", err)
	}
	if exitCode != fzf.ExitOk {
		return nil, nil
	}

	var indices []int
	seen := make(map[int]bool)
	for {
		var (
			line string
			ok   bool
		)
		select {
		case line, ok = <-output:
		default:
		}
		if !ok {
			break
		}
		n, err := strconv.Atoi(strings.SplitN(line, "\t", 2)[0])
		if err != nil || n < 1 || n > len(repos) || seen[n-1] {
			continue
		}
		seen[n-1] = true
		indices = append(indices, n-1)
	}
	sort.Ints(indices)
	return indices, nil
}
