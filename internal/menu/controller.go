// Package menu drives the interactive and plain menus on top of the use cases.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/naka-gawa/github-repo-cleaner/internal/console"
	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/usecase"
)

// State is a step of the interactive menu.
type State int

const (
	MainMenu State = iota
	Listing
	Filtering
	Selecting
	Confirming
	Deleting
	Exit
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "MainMenu"
	case Listing:
		return "Listing"
	case Filtering:
		return "Filtering"
	case Selecting:
		return "Selecting"
	case Confirming:
		return "Confirming"
	case Deleting:
		return "Deleting"
	case Exit:
		return "Exit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// mainMenuTransitions maps the operator's choice on the main menu to the next state.
var mainMenuTransitions = map[string]State{
	"1": Listing,
	"2": Filtering,
	"3": Selecting,
	"4": Exit,
}

// RepositoryLister fetches the current repository set.
type RepositoryLister interface {
	List(ctx context.Context) ([]domain.Repository, error)
}

// Confirmer guards a deletion batch.
type Confirmer interface {
	Confirm(selected []domain.Repository, username string) (bool, error)
}

// Executor deletes a confirmed batch.
type Executor interface {
	Execute(ctx context.Context, repos []domain.Repository) domain.DeletionReport
}

// Picker offers an alternative, fuzzy way to select repositories.
type Picker interface {
	Pick(repos []domain.Repository) ([]int, error)
}

// Controller is the interactive menu. It is a state machine over State.
type Controller struct {
	console *console.Console
	session domain.Session
	lister  RepositoryLister
	gate    Confirmer
	deleter Executor
	// picker is nil when stdin is not a terminal.
	picker Picker
	logger *log.Logger

	repos []domain.Repository
	// stale is set after a deletion batch until the set is fetched again.
	stale      bool
	candidates []domain.Repository
	selected   []domain.Repository
}

// NewController creates a new Controller instance. picker may be nil.
func NewController(con *console.Console, session domain.Session, lister RepositoryLister, gate Confirmer, deleter Executor, picker Picker, logger *log.Logger) *Controller {
	return &Controller{
		console: con,
		session: session,
		lister:  lister,
		gate:    gate,
		deleter: deleter,
		picker:  picker,
		logger:  logger,
		stale:   true,
	}
}

// Run loads the repository set and runs the menu until Exit or end of input.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.refresh(ctx); err != nil {
		return err
	}
	if len(c.repos) == 0 {
		c.console.Println("\nNo repositories found.")
		return nil
	}

	handlers := map[State]func(context.Context) (State, error){
		MainMenu:   c.mainMenu,
		Listing:    c.listing,
		Filtering:  c.filtering,
		Selecting:  c.selecting,
		Confirming: c.confirming,
		Deleting:   c.deleting,
	}
	state := MainMenu
	for state != Exit {
		next, err := handlers[state](ctx)
		if errors.Is(err, io.EOF) {
			c.console.Println()
			return nil
		}
		if err != nil {
			return err
		}
		c.logger.Printf("Menu: %s -> %s", state, next)
		state = next
	}
	c.console.Println("Bye!")
	return nil
}

func (c *Controller) mainMenu(_ context.Context) (State, error) {
	c.console.Println()
	c.console.Banner("Main menu")
	c.console.Println()
	c.console.Println("1. Show all repositories")
	c.console.Println("2. Filter repositories by keyword")
	c.console.Println("3. Select and delete repositories")
	c.console.Println("4. Exit")
	c.console.Println()

	choice, err := c.console.AskTrimmed("Choose an option (1-4): ")
	if err != nil {
		return Exit, err
	}
	c.console.Println()
	next, ok := mainMenuTransitions[choice]
	if !ok {
		c.console.Println("Invalid option, please choose again.")
		return MainMenu, nil
	}
	return next, nil
}

func (c *Controller) listing(ctx context.Context) (State, error) {
	if !c.ensureFresh(ctx) {
		return MainMenu, nil
	}
	console.RenderRepositories(c.console.Out(), c.repos)
	return MainMenu, nil
}

func (c *Controller) filtering(ctx context.Context) (State, error) {
	keyword, err := c.console.AskTrimmed("Keyword: ")
	if err != nil {
		return Exit, err
	}
	if keyword == "" {
		c.console.Println("Keyword cannot be empty.")
		return MainMenu, nil
	}
	if !c.ensureFresh(ctx) {
		return MainMenu, nil
	}

	filtered := usecase.Filter(c.repos, keyword)
	c.console.Printf("\nFound %d matching repositories\n", len(filtered))
	console.RenderRepositories(c.console.Out(), filtered)
	if len(filtered) == 0 {
		return MainMenu, nil
	}

	use, err := c.console.AskYesNo("Use these results for deletion? (y/N): ")
	if err != nil {
		return Exit, err
	}
	if !use {
		return MainMenu, nil
	}
	c.candidates = filtered
	return Selecting, nil
}

func (c *Controller) selecting(ctx context.Context) (State, error) {
	candidates := c.candidates
	c.candidates = nil
	if candidates == nil {
		if !c.ensureFresh(ctx) {
			return MainMenu, nil
		}
		candidates = c.repos
		if len(candidates) == 0 {
			c.console.Println("No repositories found.")
			return MainMenu, nil
		}
		console.RenderRepositories(c.console.Out(), candidates)
	}

	c.console.Println()
	c.console.Banner("Select repositories to delete")
	console.SelectionHelp(c.console.Out(), c.picker != nil)

	var indices []int
	for len(indices) == 0 {
		text, err := c.console.AskTrimmed("Repository numbers to delete: ")
		if err != nil {
			return Exit, err
		}

		if c.picker != nil && text == "f" {
			indices, err = c.picker.Pick(candidates)
			if err != nil {
				c.console.Printf("Fuzzy finder unavailable: %v\n", err)
			}
			continue
		}

		sel := usecase.ParseSelection(text, len(candidates))
		for _, p := range sel.Problems {
			c.console.Printf("Error: %v\n", p)
		}
		if sel.Cancelled {
			c.console.Println("Cancelled.")
			return MainMenu, nil
		}
		if len(sel.Indices) == 0 {
			c.console.Println("Nothing selected, please try again.")
			continue
		}
		indices = sel.Indices
	}

	selected := usecase.Pick(candidates, indices)
	c.console.Println()
	c.console.Banner("Selected repositories:")
	console.RenderSelected(c.console.Out(), selected)

	proceed, err := c.console.AskYesNo("\nDelete these repositories? (y/N): ")
	if err != nil {
		return Exit, err
	}
	if !proceed {
		return MainMenu, nil
	}
	c.selected = selected
	return Confirming, nil
}

func (c *Controller) confirming(_ context.Context) (State, error) {
	ok, err := c.gate.Confirm(c.selected, c.session.Username)
	if err != nil {
		return Exit, err
	}
	if !ok {
		c.selected = nil
		return MainMenu, nil
	}
	return Deleting, nil
}

func (c *Controller) deleting(ctx context.Context) (State, error) {
	selected := c.selected
	c.selected = nil

	c.console.Println()
	c.console.Banner("Deleting...")
	report := c.deleter.Execute(ctx, selected)
	console.RenderReport(c.console.Out(), report)

	// Indices shown before this batch are no longer valid.
	c.stale = true
	c.ensureFresh(ctx)
	return MainMenu, nil
}

// ensureFresh re-fetches the set when it is stale and reports whether it is usable.
func (c *Controller) ensureFresh(ctx context.Context) bool {
	if !c.stale {
		return true
	}
	if err := c.refresh(ctx); err != nil {
		c.console.Printf("Failed to fetch the repository list: %v\n", err)
		return false
	}
	return true
}

func (c *Controller) refresh(ctx context.Context) error {
	c.console.Println("Fetching repository list...")
	repos, err := c.lister.List(ctx)
	if err != nil {
		c.stale = true
		return err
	}
	c.repos = repos
	c.stale = false
	return nil
}
