package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

func newInspectCmd(a *app) *cobra.Command {
	var panelID string
	cmd := &cobra.Command{
		Use:   "inspect <layout.json>",
		Short: "Parse a layout and browse one of its panels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.newParser().ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			l := result.Layout
			fmt.Fprintf(out, "%s %s: %d panel(s), default %q\n",
				l.Name, l.Version, len(l.Panels), l.DefaultPanelID)

			if panelID == "" {
				panelID, err = pickPanel(l)
				if err != nil {
					return err
				}
			}
			panel, ok := l.Panels[panelID]
			if !ok {
				return fmt.Errorf("no panel %q in layout", panelID)
			}
			printPanel(out, panel)
			return nil
		},
	}
	cmd.Flags().StringVar(&panelID, "panel", "", "panel to show (prompts when omitted)")
	return cmd
}

func pickPanel(l layout.Layout) (string, error) {
	ids := make([]string, 0, len(l.Panels))
	for id := range l.Panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) == 1 {
		return ids[0], nil
	}
	prompt := &survey.Select{
		Message: "Panel to inspect:",
		Options: ids,
		Default: l.DefaultPanelID,
	}
	var choice string
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

func printPanel(out io.Writer, panel layout.Panel) {
	fmt.Fprintf(out, "panel %q: %d row(s), nesting depth %d\n", panel.ID, len(panel.Rows), panel.NestingDepth)
	for i, row := range panel.Rows {
		fmt.Fprintf(out, "  row %d:\n", i)
		for _, cell := range row.Cells {
			switch c := cell.(type) {
			case layout.Key:
				extra := ""
				if c.Sticky {
					extra = " [sticky]"
				}
				if len(c.Alternatives) > 0 {
					extra += fmt.Sprintf(" +%d alt", len(c.Alternatives))
				}
				fmt.Fprintf(out, "    key %q -> %s (w=%s h=%s)%s\n", c.Label, c.Code, c.Width, c.Height, extra)
			case layout.Widget:
				fmt.Fprintf(out, "    widget %s (w=%s h=%s)\n", c.WidgetType, c.Width, c.Height)
			case layout.PanelRef:
				fmt.Fprintf(out, "    panel ref -> %s (w=%s h=%s)\n", c.PanelID, c.Width, c.Height)
			}
		}
	}
}
