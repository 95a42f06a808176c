// cosboard-lint checks keyboard layout documents: lint prints every
// finding, inspect browses a parsed layout panel by panel, and watch
// re-lints a document whenever it changes on disk.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cotw-fabier/cosboard/pkg/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	maxInheritanceDepth int
	maxNestingDepth     int
	verbose             bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "cosboard-lint",
		Short:         "Validate and inspect keyboard layout documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	flags := cmd.PersistentFlags()
	flags.IntVar(&a.maxInheritanceDepth, "max-inheritance-depth", 5, "maximum inheritance chain length")
	flags.IntVar(&a.maxNestingDepth, "max-nesting-depth", 5, "maximum panel embedding depth")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newLintCmd(a))
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	return cmd
}

func (a *app) newParser() *parser.Parser {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return parser.New(
		parser.WithLogger(logger),
		parser.WithMaxInheritanceDepth(a.maxInheritanceDepth),
		parser.WithMaxNestingDepth(a.maxNestingDepth),
	)
}
