package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/youyo/secretlaunch/internal/resolve"
)

// ExportCmd resolves the environment's secret references and prints the
// result without launching anything. Values are masked unless --unmask
// is given, so the command is safe to run in a terminal with scrollback.
type ExportCmd struct {
	Format string `default:"shell" enum:"shell,dotenv" help:"Output format"`
	Unmask bool   `help:"Print real values instead of masked ones"`

	out io.Writer // for testing; nil means os.Stdout
}

// Run executes the export command.
func (c *ExportCmd) Run(appCtx *Context) error {
	if c.out == nil {
		c.out = os.Stdout
	}

	vars, err := resolveSecrets(appCtx)
	if err != nil {
		return fmt.Errorf("export command failed: %w", err)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	formatter := newFormatter(c.Format)
	for _, k := range keys {
		v := vars[k]
		if !c.Unmask {
			v = resolve.Mask(v)
		}
		fmt.Fprintln(c.out, formatter.line(k, v))
	}

	return nil
}

// lineFormatter defines the output format.
type lineFormatter struct {
	prefix string
	quote  func(string) string
}

func newFormatter(format string) *lineFormatter {
	switch format {
	case "dotenv":
		return &lineFormatter{prefix: "", quote: dotenvQuote}
	default:
		return &lineFormatter{prefix: "export ", quote: shellQuote}
	}
}

func (f *lineFormatter) line(key, value string) string {
	return f.prefix + key + "=" + f.quote(value)
}

// shellQuote wraps a value in single quotes, escaping internal single quotes.
func shellQuote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "'\"'\"'")
	return "'" + escaped + "'"
}

// dotenvQuote returns the value as-is if safe, or double-quoted with escaping.
func dotenvQuote(s string) string {
	if !strings.ContainsAny(s, " \t\n\"'\\#") {
		return s
	}
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
