package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xiuxian-wiki/encyclopedia/models"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [category] [query]",
	Short: "List records of a category whose name, description or type contains query",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, ok := models.ParseCategory(args[0])
	if !ok {
		return fmt.Errorf("unknown category %q", args[0])
	}
	query := ""
	if len(args) == 2 {
		query = args[1]
	}

	db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	found, err := models.NewRecordsRepository(db).Search(cmd.Context(), c, query)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for i, rec := range found {
		if i == searchLimit {
			break
		}
		base := rec.Base()
		fmt.Fprintf(tw, "%s\t%s\t%s\n", base.ID, base.Name, base.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(tw, "\n%d of %d shown\n", min(len(found), searchLimit), len(found))
	return tw.Flush()
}
