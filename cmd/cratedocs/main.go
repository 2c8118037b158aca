// Command cratedocs provides a command-line tool and MCP server for Rust
// crate documentation.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/d6e/cratedocs/cli"
	"github.com/morikuni/failure/v2"
)

func main() {
	if err := cli.Run(); err != nil {
		var userMessage string
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		} else {
			userMessage = err.Error()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)

		// A failed environment rebuild surfaces the subprocess's own
		// exit status instead of a generic failure
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}
