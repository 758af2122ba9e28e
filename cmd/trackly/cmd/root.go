package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/trackly/internal/app"
	"github.com/dmitrijs2005/trackly/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trackly",
		Short: "Personal time tracker",
		Long: `trackly keeps track of where your working time goes.

Run without a subcommand to start the interactive shell. Settings come from
defaults, TRACKLY_* environment variables, a JSON file (-c) and flags.`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(args)
			if err != nil {
				return err
			}
			a, err := app.NewApp(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
