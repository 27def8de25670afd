package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/gateway"
)

// Deleter is the use case for deleting a confirmed batch of repositories.
type Deleter struct {
	gateway   gateway.RepositoryGateway
	logger    *log.Logger
	onOutcome func(domain.DeletionOutcome)
}

// NewDeleter creates a new Deleter instance. onOutcome is called after every
// repository and may be nil.
func NewDeleter(gw gateway.RepositoryGateway, logger *log.Logger, onOutcome func(domain.DeletionOutcome)) *Deleter {
	return &Deleter{
		gateway:   gw,
		logger:    logger,
		onOutcome: onOutcome,
	}
}

// Execute deletes the repositories in order. A failure never stops the batch.
func (d *Deleter) Execute(ctx context.Context, repos []domain.Repository) domain.DeletionReport {
	d.logger.Printf("Usecase: Deleting %d repositories...", len(repos))
	var report domain.DeletionReport
	for _, r := range repos {
		outcome := domain.DeletionOutcome{Repository: r, Deleted: true}
		if err := d.gateway.DeleteRepository(ctx, r.FullName); err != nil {
			outcome.Deleted = false
			outcome.Reason = failureReason(err)
			d.logger.Printf("Usecase: delete %s failed: %v", r.FullName, err)
		}

		if outcome.Deleted {
			report.Succeeded++
		} else {
			report.Failed++
			report.Failures = append(report.Failures, outcome)
		}
		if d.onOutcome != nil {
			d.onOutcome(outcome)
		}
	}
	d.logger.Printf("Usecase: Deletion complete (%d succeeded, %d failed).", report.Succeeded, report.Failed)
	return report
}

func failureReason(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Reason()
	}
	return err.Error()
}
