package menu

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/naka-gawa/github-repo-cleaner/internal/console"
	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/usecase"
)

// Batch is the plain numbered menu: one operation per run.
type Batch struct {
	console *console.Console
	session domain.Session
	lister  RepositoryLister
	// browser backs the listing option and may point at another account.
	browser RepositoryLister
	gate    Confirmer
	deleter Executor
	targets []string
	logger  *log.Logger
}

// NewBatch creates a new Batch instance. targets are owner/name pairs for option 2.
func NewBatch(con *console.Console, session domain.Session, lister, browser RepositoryLister, gate Confirmer, deleter Executor, targets []string, logger *log.Logger) *Batch {
	return &Batch{
		console: con,
		session: session,
		lister:  lister,
		browser: browser,
		gate:    gate,
		deleter: deleter,
		targets: targets,
		logger:  logger,
	}
}

// Run shows the menu and performs the chosen operation.
func (b *Batch) Run(ctx context.Context) error {
	b.console.Println("Choose an operation:")
	b.console.Println("1. List all repositories")
	b.console.Println("2. Delete the named repositories")
	b.console.Println("3. Delete repositories matching a keyword")
	b.console.Println()

	choice, err := b.console.AskTrimmed("Option (1/2/3): ")
	if err != nil {
		return ignoreEOF(err)
	}
	b.logger.Printf("Batch: option %q", choice)
	switch choice {
	case "1":
		err = b.list(ctx)
	case "2":
		err = b.deleteNamed(ctx)
	case "3":
		err = b.deleteMatching(ctx)
	default:
		b.console.Println("Invalid option.")
	}
	return ignoreEOF(err)
}

func (b *Batch) list(ctx context.Context) error {
	b.console.Println("\nFetching repository list...")
	repos, err := b.browser.List(ctx)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		b.console.Println("No repositories found.")
		return nil
	}
	b.console.Printf("\nFound %d repositories:\n\n", len(repos))
	console.RenderList(b.console.Out(), repos)
	return nil
}

// deleteNamed resolves the targets against the owned listing so the gate can show
// their visibility. Targets that are not owned are skipped.
func (b *Batch) deleteNamed(ctx context.Context) error {
	if len(b.targets) == 0 {
		b.console.Println("\nError: no repositories named. Pass owner/name arguments or set targets in the config file.")
		return nil
	}

	repos, err := b.lister.List(ctx)
	if err != nil {
		return err
	}
	// GitHub owner and repository names are case-insensitive.
	owned := make(map[string]domain.Repository, len(repos))
	for _, r := range repos {
		owned[strings.ToLower(r.FullName)] = r
	}
	var selected []domain.Repository
	seen := make(map[string]bool, len(b.targets))
	for _, t := range b.targets {
		key := strings.ToLower(t)
		r, ok := owned[key]
		if !ok {
			b.console.Printf("Skipping %s: not among your repositories.\n", t)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		selected = append(selected, r)
	}
	if len(selected) == 0 {
		b.console.Println("Nothing to delete.")
		return nil
	}

	b.console.Printf("\nAbout to delete %d repositories:\n", len(selected))
	console.RenderSelected(b.console.Out(), selected)
	return b.confirmAndDelete(ctx, selected)
}

func (b *Batch) deleteMatching(ctx context.Context) error {
	keyword, err := b.console.AskTrimmed("\nKeyword: ")
	if err != nil {
		return err
	}
	if keyword == "" {
		b.console.Println("Keyword cannot be empty.")
		return nil
	}

	b.console.Printf("\nLooking for repositories matching '%s'...\n", keyword)
	repos, err := b.lister.List(ctx)
	if err != nil {
		return err
	}
	matching := usecase.Filter(repos, keyword)
	if len(matching) == 0 {
		b.console.Printf("No repositories match '%s'.\n", keyword)
		return nil
	}

	b.console.Printf("\nFound %d matching repositories:\n", len(matching))
	console.RenderSelected(b.console.Out(), matching)
	return b.confirmAndDelete(ctx, matching)
}

func (b *Batch) confirmAndDelete(ctx context.Context, selected []domain.Repository) error {
	ok, err := b.gate.Confirm(selected, b.session.Username)
	if err != nil || !ok {
		return err
	}
	b.console.Println("\nDeleting...")
	report := b.deleter.Execute(ctx, selected)
	console.RenderReport(b.console.Out(), report)
	return nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
