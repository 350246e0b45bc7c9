package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/willabides/kongplete"

	"github.com/youyo/secretlaunch/internal/collect"
	"github.com/youyo/secretlaunch/internal/config"
	"github.com/youyo/secretlaunch/internal/launch"
	"github.com/youyo/secretlaunch/internal/pool"
	"github.com/youyo/secretlaunch/internal/resolve"
)

// CLI is the Kong root command structure.
type CLI struct {
	Region  string        `help:"AWS region (overrides all other region settings)" optional:"" name:"region"`
	Profile string        `help:"AWS profile (overrides all other profile settings)" optional:"" name:"profile"`
	Timeout time.Duration `help:"Deadline for the whole resolution batch" optional:"" name:"timeout"`
	Debug   bool          `help:"Enable debug logging to stderr"`

	Run                RunCmd                       `cmd:"" default:"withargs" help:"Resolve secret references from the environment and execute a program."`
	Export             ExportCmd                    `cmd:"" help:"Resolve secret references and print them as environment variable lines."`
	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions."`
}

// Context holds shared dependencies injected into all commands.
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pool.Pool
	// Runner executes the child process. nil means launch.ExecRunner
	// (injected for testing).
	Runner launch.Runner
	// Environ overrides the process environment snapshot in tests.
	// nil means os.Environ().
	Environ []string
}

func (c *Context) environ() []string {
	if c.Environ != nil {
		return c.Environ
	}
	return os.Environ()
}

func (c *Context) runner() launch.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return &launch.ExecRunner{}
}

func (c *Context) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// resolveSecrets scans the environment and resolves every collected
// reference under the configured deadline. Used by both RunCmd and
// ExportCmd.
func resolveSecrets(appCtx *Context) (map[string]string, error) {
	timeout, err := appCtx.Config.ResolveTimeout()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	col := collect.FromEnviron(appCtx.environ())
	r := resolve.New(appCtx.Pool, appCtx.logger())
	return r.ResolveAll(ctx, col)
}
