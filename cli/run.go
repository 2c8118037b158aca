package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/d6e/cratedocs/api"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	crateVersion crateVersionValue
	browserFlag  bool
	plainFlag    bool
	noCacheFlag  bool

	// Root command
	rootCmd = &cobra.Command{
		Use:           "cratedocs [crate]",
		Short:         "View Rust crate documentation",
		SilenceErrors: true,
		Long: `cratedocs is a CLI tool and MCP server for Rust crate documentation.
It fetches crate READMEs from crates.io and item pages from docs.rs,
converts them to markdown and displays them with a man-like pager.

Examples:
  cratedocs serde
  cratedocs tokio -V 1.38.0
  cratedocs item tokio sync::Mutex
  cratedocs search "async runtime"`,
		Args: func(cmd *cobra.Command, args []string) error {
			// Subcommands validate their own arguments
			if cmd.CommandPath() != "cratedocs" {
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("accepts 1 arg, but received %d", len(args))
			}
			return nil
		},
		RunE: runRoot,
	}

	// Version information
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information about cratedocs",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cratedocs version %s\n", Version)
			fmt.Printf("  commit: %s\n", Commit)
			fmt.Printf("  built:  %s\n", Date)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().VarP(&crateVersion, "crate-version", "V", "Crate version (defaults to latest)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Print raw markdown without rendering or paging")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the local documentation cache")
	rootCmd.Flags().BoolVarP(&browserFlag, "browser", "b", false, "Open the crates.io page in the browser")
	rootCmd.AddCommand(versionCmd)
}

// Run executes the main CLI functionality
func Run() error {
	return rootCmd.Execute()
}

// newClient builds an api.Client honoring the cache flags
func newClient() *api.Client {
	var opts []api.Option
	if noCacheFlag {
		opts = append(opts, api.WithoutCache())
	}
	return api.NewClient(opts...)
}

func runRoot(cmd *cobra.Command, args []string) error {
	crateName := args[0]
	client := newClient()

	if browserFlag {
		u := client.CrateURL(crateName)
		fmt.Printf("Opening crate page in browser: %s\n", u)
		if err := browser.OpenURL(u); err != nil {
			return failure.New(BrowserFailed,
				failure.Message("Failed to open browser"),
				failure.Context{"url": u, "cause": err.Error()},
			)
		}
		return nil
	}

	doc, err := client.CrateDoc(cmd.Context(), crateName, crateVersion.Value)
	if err != nil {
		return failure.Wrap(err)
	}

	return display(doc)
}

// display renders markdown for a terminal and pages it. Non-terminal
// output (pipes, redirects) and --plain get the raw markdown.
func display(doc string) error {
	if plainFlag || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(doc)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return failure.Wrap(err)
	}

	out, err := renderer.Render(doc)
	if err != nil {
		return failure.Wrap(err)
	}

	if err := RunPager(out); err != nil {
		return failure.Wrap(err)
	}

	return nil
}
