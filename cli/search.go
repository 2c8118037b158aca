package cli

import (
	"fmt"
	"strings"

	"github.com/d6e/cratedocs/api"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var searchLimitFlag int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for crates on crates.io",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimitFlag, "limit", "n", 10, "Maximum number of results (max 100)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	client := newClient()

	results, err := client.SearchCrates(cmd.Context(), query, searchLimitFlag)
	if err != nil {
		return failure.Wrap(err)
	}

	return display(formatSearchResults(query, results))
}

func formatSearchResults(query string, results api.SearchResults) string {
	if len(results.Crates) == 0 {
		return fmt.Sprintf("# Search: %s\n\nNo crates found.", query)
	}

	lines := lo.Map(results.Crates, func(r api.SearchResult, _ int) string {
		desc := r.Description
		if desc == "" {
			desc = "(no description)"
		}
		return fmt.Sprintf("- **%s** v%s: %s", r.Name, r.MaxVersion, desc)
	})

	header := fmt.Sprintf("# Search: %s\n\nShowing %d of %d matches.",
		query, len(results.Crates), results.Total)

	return header + "\n\n" + strings.Join(lines, "\n")
}
