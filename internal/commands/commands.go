// Package commands defines the mediashelf command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/nhle/mediashelf/internal/model"
)

// RootOptions are the persistent flags shared by every command.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

// New builds the root command. Without a subcommand it opens the
// terminal UI.
func New() *cobra.Command {
	ro := &RootOptions{}
	uo := &uiOptions{}

	cmd := &cobra.Command{
		Use:   "mediashelf",
		Short: "A personal catalog of movies, books, games and anime.",
		Example: `
mediashelf
mediashelf --db /tmp/shelf.db
mediashelf stats
mediashelf pick --type movie --status planned
`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), ro, uo)
		},
	}

	cmd.PersistentFlags().StringVar(&ro.ConfigPath, "config", model.DefaultConfigPath(),
		"Path to the YAML configuration file.")
	cmd.PersistentFlags().StringVar(&ro.DBPath, "db", "",
		"Catalog database path, overriding database.path.")
	cmd.PersistentFlags().StringVar(&ro.LogLevel, "log-level", "",
		"Log level (debug, info, warn, error), overriding log.level.")
	addUIArgs(cmd, uo)

	AddCommands(cmd, ro)
	return cmd
}

// AddCommands registers the subcommands on topLevel.
func AddCommands(topLevel *cobra.Command, ro *RootOptions) {
	addStats(topLevel, ro)
	addPick(topLevel, ro)
	addConfig(topLevel, ro)
	addVersion(topLevel)
}
