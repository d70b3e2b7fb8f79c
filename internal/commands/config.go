package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/mediashelf/internal/model"
)

func addConfig(topLevel *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addConfigInit(cmd, ro)
	topLevel.AddCommand(cmd)
}

func addConfigInit(parent *cobra.Command, ro *RootOptions) {
	force := false

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings.",
		Example: `
mediashelf config init
mediashelf config init --config ./shelf.yaml --force
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runConfigInit(ro.ConfigPath, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ro.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file.")
	parent.AddCommand(cmd)
}

func runConfigInit(path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%s already exists; pass --force to overwrite", path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}
	return model.SaveConfig(path, model.DefaultAppConfig())
}
