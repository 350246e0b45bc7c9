package cmd

import (
	"fmt"

	"github.com/youyo/secretlaunch/internal/launch"
)

// RunCmd is the default subcommand: resolve, merge, exec.
type RunCmd struct {
	Args []string `arg:"" optional:"" passthrough:"" predictor:"bin" help:"Program and arguments to run"`
}

// Run resolves all secret references, builds the child environment and
// executes the target program. The child's exit code is forwarded as an
// ExitCodeError; resolution failures abort before anything is spawned.
func (c *RunCmd) Run(appCtx *Context) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("no program specified (usage: secretlaunch <program> [args...])")
	}

	vars, err := resolveSecrets(appCtx)
	if err != nil {
		return fmt.Errorf("resolve secrets: %w", err)
	}
	appCtx.logger().Debug("resolution complete", "variables", len(vars))

	env := launch.BuildEnv(appCtx.environ(), vars)
	code, err := appCtx.runner().Run(c.Args[0], c.Args[1:], env)
	if err != nil {
		return fmt.Errorf("run command failed: %w", err)
	}
	if code != 0 {
		return &launch.ExitCodeError{Code: code}
	}
	return nil
}
