package main

import (
	"fmt"

	"github.com/ZaguanLabs/menuval"
	"github.com/spf13/cobra"
)

func newDiffCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "diff <previous> <current>",
		Short: "Compare two versions of a menu",
		Long: "Diff matches items by normalized name and reports which were added, removed " +
			"or had their description changed. Use --previous on the batch commands to " +
			"process only the changed items.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldItems, err := readItemsFile(args[0], "")
			if err != nil {
				return err
			}
			newItems, err := readItemsFile(args[1], "")
			if err != nil {
				return err
			}

			diff := menuval.DiffItems(oldItems, newItems)
			if asJSON {
				return writeJSON(a.stdout, struct {
					*menuval.ItemDiff
					Stats menuval.DiffStats `json:"stats"`
				}{diff, diff.Stats()})
			}
			printDiff(a, diff)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the diff as JSON")
	return cmd
}

func printDiff(a *app, d *menuval.ItemDiff) {
	for _, item := range d.Added {
		fmt.Fprintf(a.stdout, "+ %s\n", item.Name)
	}
	for _, item := range d.Removed {
		fmt.Fprintf(a.stdout, "- %s\n", item.Name)
	}
	for _, m := range d.Modified {
		fmt.Fprintf(a.stdout, "~ %s\n    was: %s\n    now: %s\n", m.New.Name, m.Old.Description, m.New.Description)
	}
	st := d.Stats()
	a.summary("\n%d added, %d removed, %d modified, %d unchanged\n", st.Added, st.Removed, st.Modified, st.Unchanged)
}
