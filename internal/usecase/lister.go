// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/gateway"
)

// Lister is the use case for collecting every repository owned by the account.
type Lister struct {
	gateway gateway.RepositoryGateway
	opts    gateway.ListOptions
	logger  *log.Logger
}

// NewLister creates a new Lister instance.
func NewLister(gw gateway.RepositoryGateway, opts gateway.ListOptions, logger *log.Logger) *Lister {
	return &Lister{
		gateway: gw,
		opts:    opts,
		logger:  logger,
	}
}

// List fetches the complete repository set. On failure nothing is returned.
func (l *Lister) List(ctx context.Context) ([]domain.Repository, error) {
	l.logger.Println("Usecase: Listing owned repositories...")
	repos, err := l.gateway.ListOwnedRepositories(ctx, l.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	l.logger.Printf("Usecase: Listed %d repositories.", len(repos))
	return repos, nil
}
