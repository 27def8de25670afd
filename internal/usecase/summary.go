package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

// Summary holds the aggregate numbers printed under a listing.
type Summary struct {
	Count       int
	Private     int
	TotalStars  int
	MedianStars float64
	TotalForks  int
}

// Summarize aggregates a repository set. An empty set yields a zero Summary.
func Summarize(repos []domain.Repository) Summary {
	s := Summary{Count: len(repos)}
	if len(repos) == 0 {
		return s
	}
	stars := make(stats.Float64Data, 0, len(repos))
	forks := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		if r.Private {
			s.Private++
		}
		stars = append(stars, float64(r.Stars))
		forks = append(forks, float64(r.Forks))
	}
	// errors only occur on empty input, ruled out above
	totalStars, _ := stars.Sum()
	totalForks, _ := forks.Sum()
	s.MedianStars, _ = stars.Median()
	s.TotalStars = int(totalStars)
	s.TotalForks = int(totalForks)
	return s
}
