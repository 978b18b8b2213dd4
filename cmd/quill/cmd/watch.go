package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/driver"
	"github.com/quill-lang/quill/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Re-check files whenever they change",
	Args:  usageArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d := driver.New(driver.FromConfig(cfg, logger))
		check := func(files []string) {
			res, err := d.Parse(ctx, files...)
			if err != nil {
				return
			}
			if report(res) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ok: %d file(s)\n", time.Now().Format("15:04:05"), len(res.Files))
			}
		}

		check(args)
		logger.Info("watching %d file(s)", len(args))
		err := watch.Run(ctx, args, watchDebounce, func(changed []string) {
			logger.Debug("changed: %v", changed)
			check(args)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "delay before re-checking after a change")
	rootCmd.AddCommand(watchCmd)
}
