package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/usecase"
)

const maxDescription = 60

// RenderRepositories prints the numbered repository table. Numbers are 1-based.
func RenderRepositories(w io.Writer, repos []domain.Repository) {
	if len(repos) == 0 {
		fmt.Fprintln(w, "\nNo repositories found.")
		return
	}
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nFound %d repositories:\n%s\n\n", rule, len(repos), rule)
	for i, r := range repos {
		fmt.Fprintf(w, "%3d. %-50s [%s]\n", i+1, r.FullName, r.Visibility())
		if r.Description != "" {
			fmt.Fprintf(w, "     Description: %s\n", truncate(r.Description, maxDescription))
		}
		updated := "N/A"
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "     Updated: %s | Stars: %d | Forks: %d\n\n", updated, r.Stars, r.Forks)
	}
	RenderSummary(w, usecase.Summarize(repos))
}

// RenderList prints one line per repository, as used by the plain menu.
func RenderList(w io.Writer, repos []domain.Repository) {
	for i, r := range repos {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, r.FullName, r.Visibility())
		if r.Description != "" {
			fmt.Fprintf(w, "   Description: %s\n", r.Description)
		}
	}
}

// RenderSummary prints the aggregate line under a listing.
func RenderSummary(w io.Writer, s usecase.Summary) {
	fmt.Fprintf(w, "%d repositories (%d private) | Stars: %d total, %.1f median | Forks: %d total\n",
		s.Count, s.Private, s.TotalStars, s.MedianStars, s.TotalForks)
}

// RenderSelected prints the chosen repositories with their visibility.
func RenderSelected(w io.Writer, repos []domain.Repository) {
	for _, r := range repos {
		fmt.Fprintf(w, "  - %s (%s)\n", r.FullName, r.Visibility())
	}
}

// RenderOutcome prints a single deletion result.
func RenderOutcome(w io.Writer, o domain.DeletionOutcome) {
	if o.Deleted {
		fmt.Fprintf(w, "✓ deleted: %s\n", o.Repository.FullName)
		return
	}
	fmt.Fprintf(w, "✗ failed: %s - %s\n", o.Repository.FullName, o.Reason)
}

// RenderReport prints the final tally of a deletion batch.
func RenderReport(w io.Writer, r domain.DeletionReport) {
	fmt.Fprintf(w, "\ndone: ✓ %d succeeded, ✗ %d failed\n", r.Succeeded, r.Failed)
}

// SelectionHelp describes the selection syntax.
func SelectionHelp(w io.Writer, fuzzy bool) {
	fmt.Fprintln(w, "\nSelection syntax:")
	fmt.Fprintln(w, "  - single number:          5")
	fmt.Fprintln(w, "  - range:                  1-10")
	fmt.Fprintln(w, "  - comma separated:        1,3,5,7")
	fmt.Fprintln(w, "  - space separated:        1 3 5 7")
	fmt.Fprintln(w, "  - mixed:                  1-5,8,10-12")
	fmt.Fprintln(w, "  - everything:             all")
	if fuzzy {
		fmt.Fprintln(w, "  - fuzzy finder:           f")
	}
	fmt.Fprintln(w, "  - cancel:                 q / quit")
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
