package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/forestwatch/forestwatch/client"
	"github.com/forestwatch/forestwatch/resolve"
)

var (
	listResolved      bool
	resolveThreatType string
	resolveDetails    string
	resolveFile       string
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List and resolve sensor alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alerts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, store, c, err := openSession()
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := requireAuth(cmd.Context(), mgr); err != nil {
			return err
		}
		alerts, err := c.Alerts(cmd.Context(), listResolved)
		if err != nil {
			return err
		}
		if len(alerts) == 0 {
			fmt.Println("No alerts")
			return nil
		}
		for _, a := range alerts {
			printAlert(a)
		}
		return nil
	},
}

var alertsResolveCmd = &cobra.Command{
	Use:   "resolve <alert-id>",
	Short: "Resolve one alert with a classification, notes and an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alertID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid alert id %q", args[0])
		}

		mgr, store, c, err := openSession()
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := requireAuth(cmd.Context(), mgr); err != nil {
			return err
		}

		var f *os.File
		var mediaType, filename string
		if resolveFile != "" {
			f, err = os.Open(resolveFile)
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			defer f.Close()
			filename = filepath.Base(resolveFile)
			mediaType = mime.TypeByExtension(filepath.Ext(resolveFile))
		}

		sub := resolve.Submission{
			ThreatType: resolveThreatType,
			Details:    resolveDetails,
			Filename:   filename,
			MediaType:  mediaType,
		}
		if f != nil {
			sub.File = f
		}

		wf := resolve.NewWorkflow(c, alertID, func() {
			// The workflow never touches a local cache; refetch instead.
			if alerts, err := c.Alerts(cmd.Context(), false); err == nil {
				fmt.Printf("%d unresolved alert(s) remaining\n", len(alerts))
			}
		})
		alert, err := wf.Submit(cmd.Context(), sub)
		if err != nil {
			if reason := wf.FailureReason(); reason != "" {
				return fmt.Errorf("%s", reason)
			}
			return err
		}
		fmt.Printf("Alert #%d resolved (%s)\n", alert.ID, alert.ThreatType)
		return nil
	},
}

func printAlert(a client.Alert) {
	status := "ACTIVE  "
	if a.Resolved {
		status = "RESOLVED"
	}
	fmt.Printf("#%-5d %s  %-20s %s\n", a.ID, status, a.SensorName, a.AlertTime.Format(time.RFC3339))
	if a.Resolved {
		if a.ResolvedAt != nil {
			fmt.Printf("       resolved at %s, threat: %s\n", a.ResolvedAt.Format(time.RFC3339), a.ThreatType)
		}
		if a.ResolutionDetails != "" {
			fmt.Printf("       %s\n", a.ResolutionDetails)
		}
	}
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsResolveCmd)

	alertsListCmd.Flags().BoolVar(&listResolved, "resolved", false, "List resolved alerts instead of active ones")

	alertsResolveCmd.Flags().StringVarP(&resolveThreatType, "threat-type", "t", "", `Classification: "real" or "false"`)
	alertsResolveCmd.Flags().StringVarP(&resolveDetails, "details", "d", "", "What happened and what actions were taken")
	alertsResolveCmd.Flags().StringVarP(&resolveFile, "file", "f", "", "Path to a supporting image")
}
