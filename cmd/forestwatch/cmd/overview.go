package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/forestwatch/forestwatch/client"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show sensor statuses and alert statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, store, c, err := openSession()
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := requireAuth(cmd.Context(), mgr); err != nil {
			return err
		}
		overview, err := c.Overview(cmd.Context())
		if err != nil {
			return err
		}
		printOverview(overview)
		return nil
	},
}

func printOverview(o client.Overview) {
	s := o.Statistics
	fmt.Printf("Sensors: %d   Active alerts: %d   Resolved: %d   Total: %d\n\n",
		s.TotalSensors, s.UnresolvedAlerts, s.ResolvedAlerts, s.TotalAlerts)
	for _, sensor := range o.Sensors {
		marker := "OK   "
		if sensor.Status == "red" {
			marker = "ALERT"
		}
		line := fmt.Sprintf("  [%s] %-20s (%.4f, %.4f)", marker, sensor.SensorName, sensor.Latitude, sensor.Longitude)
		if sensor.LastAlertTime != nil {
			line += "  last alert " + sensor.LastAlertTime.Format(time.RFC3339)
		}
		fmt.Println(line)
	}
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}
