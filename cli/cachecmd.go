package cli

import (
	"fmt"

	"github.com/d6e/cratedocs/api/cache"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local documentation cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cache.ClearAll(); err != nil {
			return failure.Wrap(err)
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
