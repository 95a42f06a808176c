package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounce coalesces the burst of events editors emit per save.
const debounce = 200 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <layout.json>",
		Short: "Re-lint a layout document whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			// Watch the directory, not the file: editors replace files
			// on save and the inode watch would go stale.
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := a.newParser()
			out := cmd.OutOrStdout()
			report := func() {
				result, err := p.ParseFile(ctx, path)
				switch {
				case err != nil:
					fmt.Fprintf(out, "%s: FAIL\n%v\n", path, err)
				case result.HasWarnings():
					fmt.Fprintf(out, "%s: OK with %d warning(s)\n", path, result.WarningCount())
					for _, warning := range result.Warnings {
						fmt.Fprintf(out, "  %s\n", warning)
					}
				default:
					fmt.Fprintf(out, "%s: OK\n", path)
				}
			}
			report()

			var timer *time.Timer
			pending := make(chan struct{}, 1)
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Name != path || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounce, func() {
						select {
						case pending <- struct{}{}:
						default:
						}
					})
				case <-pending:
					report()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
				}
			}
		},
	}
	return cmd
}
