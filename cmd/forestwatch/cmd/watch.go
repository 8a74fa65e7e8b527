package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forestwatch/forestwatch/client"
	"github.com/forestwatch/forestwatch/watch"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [alerts|overview]",
	Short: "Poll the dashboard and print updates until interrupted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view := "overview"
		if len(args) == 1 {
			view = args[0]
		}
		if view != "alerts" && view != "overview" {
			return fmt.Errorf("unknown view %q (want alerts or overview)", view)
		}

		mgr, store, c, err := openSession()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if _, err := requireAuth(ctx, mgr); err != nil {
			return err
		}

		printBanner()
		fmt.Printf("Watching %s every %s (Ctrl-C to stop)\n\n", view, watchInterval)

		switch view {
		case "alerts":
			watchAlerts(ctx, c)
		case "overview":
			watchOverview(ctx, c)
		}
		fmt.Println("\nStopped")
		return nil
	},
}

func watchAlerts(ctx context.Context, c *client.Client) {
	poller := watch.New(watchInterval, func(ctx context.Context) ([]client.Alert, error) {
		return c.Alerts(ctx, false)
	})
	for r := range poller.Run(ctx) {
		if r.Err != nil {
			fmt.Printf("[%s] fetch failed: %v\n", time.Now().Format(time.TimeOnly), r.Err)
			continue
		}
		fmt.Printf("[%s] %d active alert(s)\n", time.Now().Format(time.TimeOnly), len(r.Value))
		for _, a := range r.Value {
			printAlert(a)
		}
	}
}

func watchOverview(ctx context.Context, c *client.Client) {
	poller := watch.New(watchInterval, func(ctx context.Context) (client.Overview, error) {
		return c.Overview(ctx)
	})
	for r := range poller.Run(ctx) {
		if r.Err != nil {
			fmt.Printf("[%s] fetch failed: %v\n", time.Now().Format(time.TimeOnly), r.Err)
			continue
		}
		fmt.Printf("[%s]\n", time.Now().Format(time.TimeOnly))
		printOverview(r.Value)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", watch.DefaultInterval, "Refresh interval")
}
