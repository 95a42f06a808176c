package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLintCmd(a *app) *cobra.Command {
	var warningsAsErrors bool
	cmd := &cobra.Command{
		Use:   "lint <layout.json>...",
		Short: "Parse layout documents and report every finding",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.newParser()
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				result, err := p.ParseFile(cmd.Context(), path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: FAIL\n%v\n", path, err)
					continue
				}
				if result.HasWarnings() {
					fmt.Fprintf(out, "%s: OK with %d warning(s)\n", path, result.WarningCount())
					for _, warning := range result.Warnings {
						fmt.Fprintf(out, "  %s\n", warning)
					}
				} else {
					fmt.Fprintf(out, "%s: OK\n", path)
				}
				if warningsAsErrors && result.HasWarnings() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d document(s) failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&warningsAsErrors, "strict", false, "treat warnings as failures")
	return cmd
}
