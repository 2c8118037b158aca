package envcache

import (
	"context"
	"os"
	"os/exec"

	"github.com/d6e/cratedocs/log"
)

// forceReloadEnv instructs nix-direnv to discard its cached environment
// and rebuild from the flake even when the cache looks current.
const forceReloadEnv = "_nix_direnv_force_reload=1"

// DirenvRunner runs `direnv exec <dir> true` with a forced reload. Running
// any command through `direnv exec` makes direnv evaluate the environment;
// `true` keeps the command itself a no-op.
type DirenvRunner struct {
	// Direnv overrides the executable name, for tests
	Direnv string
}

// Run implements CommandRunner. The subprocess inherits stdout/stderr so
// slow toolchain fetches stay visible, and its exit status is surfaced
// unchanged via *exec.ExitError.
func (d *DirenvRunner) Run(ctx context.Context, dir string) error {
	name := d.Direnv
	if name == "" {
		name = "direnv"
	}

	cmd := exec.CommandContext(ctx, name, "exec", dir, "true")
	cmd.Env = append(os.Environ(), forceReloadEnv)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Debug("running environment rebuild", "cmd", name, "dir", dir)
	return cmd.Run()
}
