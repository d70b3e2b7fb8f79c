package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/ui"
)

func addPick(topLevel *cobra.Command, ro *RootOptions) {
	fo := &FilterOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick one random item from the filtered catalog.",
		Example: `
mediashelf pick
mediashelf pick --type book --status planned
mediashelf pick --tag comfort --favorites
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(ro, logStderr)
			if err != nil {
				return err
			}
			defer e.Close()
			return runPick(cmd.Context(), e.svc, fo, cmd.OutOrStdout())
		},
	}

	AddFilterArgs(cmd, fo)
	topLevel.AddCommand(cmd)
}

func runPick(ctx context.Context, svc *catalog.Service, fo *FilterOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	f, found, err := fo.Filter(ctx, svc)
	if err != nil {
		return err
	}
	if !found {
		_, _ = fmt.Fprintf(out, "No tag named %q.\n", fo.Tag)
		return nil
	}

	items, err := svc.ListItems(ctx, f)
	if err != nil {
		return err
	}
	item, ok := svc.PickRandom(items)
	if !ok {
		_, _ = fmt.Fprintln(out, "Nothing matches.")
		return nil
	}

	_, _ = fmt.Fprintln(out, renderItem(item))
	return nil
}

func renderItem(it model.Item) *uitable.Table {
	bold := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60

	tbl.AddRow(bold("Title"), it.Title)
	tbl.AddRow(bold("Type"), it.Type)
	tbl.AddRow(bold("Status"), it.Status)
	if it.Year != nil {
		tbl.AddRow(bold("Year"), *it.Year)
	}
	if it.Rating != nil {
		tbl.AddRow(bold("Rating"), strconv.FormatFloat(*it.Rating, 'f', -1, 64))
	}
	if it.Favorite {
		tbl.AddRow(bold("Favorite"), "yes")
	}
	if len(it.Tags) > 0 {
		tbl.AddRow(bold("Tags"), ui.JoinTagNames(it.Tags))
	}
	if it.Comment != nil && *it.Comment != "" {
		tbl.AddRow(bold("Comment"), *it.Comment)
	}
	return tbl
}
