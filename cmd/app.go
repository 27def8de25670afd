package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-repo-cleaner/internal/config"
	"github.com/naka-gawa/github-repo-cleaner/internal/console"
	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/gateway"
	"github.com/naka-gawa/github-repo-cleaner/internal/menu"
	"github.com/naka-gawa/github-repo-cleaner/internal/usecase"
)

// app holds what every command needs once the token has been verified.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	console *console.Console
	gateway gateway.RepositoryGateway
	session domain.Session
}

// newApp loads the configuration, prints the banner and verifies the token.
func newApp(cmd *cobra.Command, title string) (*app, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	con := console.New(os.Stdin, os.Stdout)
	con.Banner(" " + title)
	con.Println()

	gw, err := gateway.NewGitHubGateway(domain.Session{Token: cfg.Token}, cfg.APIURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	session, err := menu.Login(cmd.Context(), gw, con, cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("token verification failed, check that GITHUB_TOKEN is correct: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		console: con,
		gateway: gw,
		session: session,
	}, nil
}

func (a *app) gate() *usecase.Gate {
	return usecase.NewGate(a.console, a.console.Out())
}

func (a *app) deleter() *usecase.Deleter {
	return usecase.NewDeleter(a.gateway, a.logger, func(o domain.DeletionOutcome) {
		console.RenderOutcome(a.console.Out(), o)
	})
}
