package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/barber-hub/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-hub/internal/db"
	"github.com/BruksfildServices01/barber-hub/internal/theme"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "barberctl",
		Short:         "Operator tools for barber-hub",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCmd(), newThemeCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema (reads DATABASE_URL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if err := dbpkg.Migrate(db, cfg.DefaultTimezone); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newThemeCmd() *cobra.Command {
	var (
		colors theme.Colors
		format string
	)

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the CSS variables derived from four seed colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			palette, err := theme.Derive(colors)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "css":
				fmt.Fprintln(out, palette.CSS())
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(palette)
			default:
				return fmt.Errorf("unknown format %q (use css or json)", format)
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&colors.Primary, "primary", theme.DefaultColors.Primary, "primary color (#RRGGBB)")
	f.StringVar(&colors.Secondary, "secondary", theme.DefaultColors.Secondary, "secondary color (#RRGGBB)")
	f.StringVar(&colors.Background, "background", theme.DefaultColors.Background, "background color (#RRGGBB)")
	f.StringVar(&colors.Text, "text", theme.DefaultColors.Text, "text color (#RRGGBB)")
	f.StringVar(&format, "format", "css", "output format: css or json")

	return cmd
}
