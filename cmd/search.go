package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/iconx/internal/catalog"
	"github.com/Rorical/iconx/internal/search"
)

var (
	searchLimit    int
	searchCategory string
	searchBrowse   bool
	searchLong     bool
	categoriesMD   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search icon names",
	Long: `Search ranks exact matches first, then names starting with the query,
then names containing it. Within a rank shorter names come first unless
--browse or --category is given, which keep catalog order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		ix := search.NewIndex(catalog.Load())

		var names []string
		switch {
		case searchCategory != "":
			if _, ok := ix.Catalog().Category(searchCategory); !ok {
				return fmt.Errorf("unknown category %q, see `iconx categories`", searchCategory)
			}
			names = ix.BrowseCategory(searchCategory, query, searchLimit)
		case searchBrowse:
			names = ix.Browse(query, searchLimit)
		default:
			names = ix.Search(query, searchLimit)
		}

		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintf(out, "No icons match %q\n", query)
			if hints := ix.Catalog().Suggest(query, 3); len(hints) > 0 {
				fmt.Fprintf(out, "Did you mean: %s?\n", strings.Join(hints, ", "))
			}
			return nil
		}
		for _, name := range names {
			if !searchLong {
				fmt.Fprintln(out, name)
				continue
			}
			cat, _ := ix.Catalog().CategoryOf(name)
			fmt.Fprintf(out, "%-24s %s\n", name, cat.ID)
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List icon categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Load()
		out := cmd.OutOrStdout()
		if categoriesMD {
			fmt.Fprint(out, cat.Markdown())
			return nil
		}
		for _, c := range cat.Categories() {
			fmt.Fprintf(out, "%-14s %-14s %3d  %s\n", c.ID, c.Name, len(c.Icons), c.Description)
		}
		fmt.Fprintf(out, "\n%d icons in %d categories\n", cat.Len(), len(cat.Categories()))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum results, 0 for all")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "only search one category id")
	searchCmd.Flags().BoolVar(&searchBrowse, "browse", false, "keep catalog order within each rank")
	searchCmd.Flags().BoolVarP(&searchLong, "long", "l", false, "show each icon's category")

	categoriesCmd.Flags().BoolVar(&categoriesMD, "markdown", false, "print the catalog as a markdown table")
}
