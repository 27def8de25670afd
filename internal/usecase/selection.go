package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

// Selection is the parsed form of the operator's selection text.
type Selection struct {
	// Indices are 0-based, unique and ascending.
	Indices []int
	// Cancelled is set when the operator typed a quit word.
	Cancelled bool
	// Problems lists the tokens that were rejected. They do not abort the parse.
	Problems []error
}

var quitWords = map[string]bool{"q": true, "quit": true, "exit": true}

// ParseSelection converts text such as "1-3,5 8" or "all" into indices over count items.
// Numbers in the text are 1-based and ranges are inclusive.
func ParseSelection(text string, count int) Selection {
	text = strings.ToLower(strings.TrimSpace(text))
	if quitWords[text] {
		return Selection{Cancelled: true}
	}
	if text == "all" {
		indices := make([]int, count)
		for i := range indices {
			indices[i] = i
		}
		return Selection{Indices: indices}
	}

	var sel Selection
	seen := make(map[int]bool)
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, token := range tokens {
		first, last, err := parseToken(token, count)
		if err != nil {
			sel.Problems = append(sel.Problems, err)
			continue
		}
		for n := first; n <= last; n++ {
			if !seen[n-1] {
				seen[n-1] = true
				sel.Indices = append(sel.Indices, n-1)
			}
		}
	}
	sort.Ints(sel.Indices)
	return sel
}

// parseToken returns the inclusive 1-based bounds a single token covers.
func parseToken(token string, count int) (int, int, error) {
	if startText, endText, isRange := strings.Cut(token, "-"); isRange {
		start, err1 := strconv.Atoi(startText)
		end, err2 := strconv.Atoi(endText)
		if err1 != nil || err2 != nil {
			return 0, 0, &domain.InputError{Input: token, Msg: "cannot parse"}
		}
		if start < 1 || end > count || start > end {
			return 0, 0, &domain.InputError{Input: token, Msg: fmt.Sprintf("invalid range (valid range: 1-%d)", count)}
		}
		return start, end, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, 0, &domain.InputError{Input: token, Msg: "cannot parse"}
	}
	if n < 1 || n > count {
		return 0, 0, &domain.InputError{Input: token, Msg: fmt.Sprintf("number out of range (valid range: 1-%d)", count)}
	}
	return n, n, nil
}

// Pick returns the repositories at the given indices.
func Pick(repos []domain.Repository, indices []int) []domain.Repository {
	picked := make([]domain.Repository, 0, len(indices))
	for _, i := range indices {
		picked = append(picked, repos[i])
	}
	return picked
}
