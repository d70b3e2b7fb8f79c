package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
)

func addStats(topLevel *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog counts.",
		Example: `
mediashelf stats
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(ro, logStderr)
			if err != nil {
				return err
			}
			defer e.Close()
			return runStats(cmd.Context(), e.svc, cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

func runStats(ctx context.Context, svc *catalog.Service, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Items"), st.Items)
	tbl.AddRow(bold("Tags"), st.Tags)
	tbl.AddRow(bold("Lists"), st.Lists)

	// Per-type breakdown.
	for _, t := range model.AllItemTypes {
		tt := t
		items, err := svc.ListItems(ctx, catalog.Filter{Type: &tt})
		if err != nil {
			return err
		}
		tbl.AddRow("  "+string(t), len(items))
	}

	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
