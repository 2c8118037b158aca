package cli

import (
	"github.com/d6e/cratedocs/mcp"
)

func init() {
	rootCmd.AddCommand(mcp.Command())
}
