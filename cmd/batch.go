package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
	"github.com/naka-gawa/github-repo-cleaner/internal/gateway"
	"github.com/naka-gawa/github-repo-cleaner/internal/menu"
	"github.com/naka-gawa/github-repo-cleaner/internal/usecase"
)

var batchCmd = &cobra.Command{
	Use:   "batch [owner/name...]",
	Short: "Plain numbered menu: list, delete named repositories, or delete by keyword",
	Long: `Runs a single operation from a numbered menu:

  1. list all owned repositories
  2. delete the repositories named as arguments (or in the config file's targets)
  3. delete the repositories whose name or description matches a keyword`,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		for _, a := range args {
			if _, _, err := domain.SplitFullName(a); err != nil {
				return err
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "GitHub repository batch deletion")
		if err != nil {
			return err
		}

		targets := args
		if len(targets) == 0 {
			targets = a.cfg.Targets
		}
		lister := usecase.NewLister(a.gateway, gateway.ListOptions{PageSize: a.cfg.PageSize}, a.logger)
		browser := lister
		if a.cfg.ListUser != "" {
			browser = usecase.NewLister(a.gateway, gateway.ListOptions{Username: a.cfg.ListUser, PageSize: a.cfg.PageSize}, a.logger)
		}

		batch := menu.NewBatch(a.console, a.session, lister, browser, a.gate(), a.deleter(), targets, a.logger)
		return batch.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
