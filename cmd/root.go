// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/naka-gawa/github-repo-cleaner/internal/console"
	"github.com/naka-gawa/github-repo-cleaner/internal/gateway"
	"github.com/naka-gawa/github-repo-cleaner/internal/menu"
	"github.com/naka-gawa/github-repo-cleaner/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-repo-cleaner",
	Short: "Interactively select and delete your GitHub repositories.",
	Long: `github-repo-cleaner lists the repositories owned by the account behind
GITHUB_TOKEN, lets you filter and select them, and deletes the selection after
you re-type your username and DELETE.

Selections accept single numbers, ranges (1-10), comma or space separated
lists, and "all".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GitHub repository cleaner (interactive)")
		if err != nil {
			return err
		}

		lister := usecase.NewLister(a.gateway, gateway.ListOptions{
			Sort:     a.cfg.Sort,
			PageSize: a.cfg.PageSize,
			OnPage: func(total int) {
				a.console.Printf("  fetched %d repositories...\n", total)
			},
		}, a.logger)

		// The fuzzy finder needs a terminal to draw on.
		var picker menu.Picker
		if term.IsTerminal(int(os.Stdin.Fd())) {
			picker = console.NewPicker()
		}

		controller := menu.NewController(a.console, a.session, lister, a.gate(), a.deleter(), picker, a.logger)
		return controller.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, release := notifyInterrupt(os.Exit)
	err := rootCmd.ExecuteContext(ctx)
	release()
	if err != nil {
		os.Exit(1)
	}
}

// interruptExitCode is the conventional status for a process ended by SIGINT.
const interruptExitCode = 130

// notifyInterrupt returns a context cancelled by SIGINT or SIGTERM. Prompts block on
// stdin without watching the context, so the first signal also restores the default
// handlers and calls exit. release must be called once the command has returned.
func notifyInterrupt(exit func(int)) (context.Context, func()) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			select {
			case <-done:
				// cancelled by release, not by a signal
				return
			default:
			}
			stop()
			fmt.Fprintln(os.Stderr, "\nInterrupted.")
			exit(interruptExitCode)
		case <-done:
		}
	}()
	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			close(done)
			stop()
		})
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.github-repo-cleaner/config.yaml)")
}
