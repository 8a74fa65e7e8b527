package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/forestwatch/forestwatch/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, store, c, err := openSession()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := requireAuth(cmd.Context(), mgr)
		if err != nil {
			return err
		}
		fmt.Printf("Username:  %s\n", user.Username)
		fmt.Printf("Full name: %s\n", user.FullName)
		fmt.Printf("Email:     %s\n", user.Email)
		if exp, ok := session.TokenExpiry(c.Token()); ok {
			fmt.Printf("Token expires: %s (%s)\n", exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
