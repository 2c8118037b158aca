package cli

import (
	"fmt"

	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item <crate> <item-path>",
	Short: "Show documentation for an item within a crate",
	Long: `Show documentation for a specific item (struct, enum, trait, fn or macro)
in a crate, fetched from docs.rs.

The item path uses Rust syntax, with or without the crate prefix:
  cratedocs item tokio sync::Mutex
  cratedocs item serde serde::Deserialize`,
	Args: cobra.ExactArgs(2),
	RunE: runItem,
}

func init() {
	rootCmd.AddCommand(itemCmd)
}

func runItem(cmd *cobra.Command, args []string) error {
	crateName, itemPath := args[0], args[1]
	client := newClient()

	fmt.Printf("Displaying documentation: %s (%s)\n", itemPath, crateName)
	doc, err := client.LookupItem(cmd.Context(), crateName, itemPath, crateVersion.Value)
	if err != nil {
		return failure.Wrap(err)
	}

	return display(doc)
}
