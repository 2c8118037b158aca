package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d6e/cratedocs/envcache"
	"github.com/spf13/cobra"
)

var refreshEnvCmd = &cobra.Command{
	Use:   "refresh-env [dir]",
	Short: "Force-rebuild the direnv environment for the project checkout",
	Long: `Force a rebuild of the cached direnv/nix-direnv development environment
for the cratedocs checkout, then re-stamp .envrc and the .direnv profile
caches so the next shell entry does not trigger a second rebuild.

Without an argument the default checkout location is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefreshEnv,
}

func init() {
	rootCmd.AddCommand(refreshEnvCmd)
}

// defaultProjectDir is where the cratedocs checkout is expected to live
func defaultProjectDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/root/src/cratedocs"
	}
	return filepath.Join(home, "src", "cratedocs")
}

func runRefreshEnv(cmd *cobra.Command, args []string) error {
	dir := defaultProjectDir()
	if len(args) == 1 {
		dir = args[0]
	}

	refresher := envcache.NewRefresher()
	if err := refresher.Refresh(cmd.Context(), dir); err != nil {
		return err
	}

	fmt.Printf("Environment refreshed: %s\n", dir)
	return nil
}
