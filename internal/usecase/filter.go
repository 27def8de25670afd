package usecase

import (
	"strings"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

// Filter keeps the repositories whose name or description contains keyword, ignoring case.
// Order is preserved. Callers reject an empty keyword beforehand.
func Filter(repos []domain.Repository, keyword string) []domain.Repository {
	keyword = strings.ToLower(keyword)
	matched := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if strings.Contains(strings.ToLower(r.Name), keyword) ||
			(r.Description != "" && strings.Contains(strings.ToLower(r.Description), keyword)) {
			matched = append(matched, r)
		}
	}
	return matched
}

