package cmd

import (
	"github.com/dmitrijs2005/trackly/internal/app"
	"github.com/dmitrijs2005/trackly/internal/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate",
		Short:              "Apply pending schema migrations and exit",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(args)
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}
}
