// Package launch assembles the child environment and runs the target
// program.
package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Runner abstracts subprocess execution for testability.
type Runner interface {
	Run(name string, args []string, env []string) (int, error)
}

// ExecRunner is the production Runner. I/O is connected directly to
// os.Stdin/Stdout/Stderr.
type ExecRunner struct{}

// Run executes the named program and returns its exit code. A child
// terminated by a signal reports exit code 1. A non-nil error means the
// child could not be started at all.
func (r *ExecRunner) Run(name string, args []string, env []string) (int, error) {
	c := exec.Command(name, args...)
	c.Env = env
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// Killed by a signal: report a fixed fallback code.
		return 1, nil
	}
	return 0, fmt.Errorf("start %s: %w", name, err)
}

// BuildEnv merges resolved values over the parent environment snapshot.
// Resolved values always win over inherited variables of the same name.
// The result is sorted for deterministic child environments.
func BuildEnv(parent []string, resolved map[string]string) []string {
	merged := make(map[string]string, len(parent)+len(resolved))
	for _, kv := range parent {
		idx := strings.IndexByte(kv, '=')
		if idx <= 0 {
			continue
		}
		merged[kv[:idx]] = kv[idx+1:]
	}
	for k, v := range resolved {
		merged[k] = v
	}

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// ExitCodeError carries the child's exit code out through the command
// layer so main can forward it via os.Exit.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
