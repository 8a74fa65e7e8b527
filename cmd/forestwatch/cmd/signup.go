package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forestwatch/forestwatch/client"
)

var (
	signupUsername string
	signupEmail    string
	signupFullName string
	signupPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new operator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, store, _, err := openSession()
		if err != nil {
			return err
		}
		defer store.Close()

		password := signupPassword
		if password == "" {
			password, err = promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
		}

		user, err := mgr.Signup(cmd.Context(), client.RegisterRequest{
			Username: signupUsername,
			Email:    signupEmail,
			FullName: signupFullName,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		fmt.Printf("Account created for %s. Run `forestwatch login` to sign in.\n", user.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVarP(&signupUsername, "username", "u", "", "Username")
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Email address")
	signupCmd.Flags().StringVarP(&signupFullName, "full-name", "n", "", "Full name")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "Password (prompted if omitted)")
	signupCmd.MarkFlagRequired("username")
	signupCmd.MarkFlagRequired("email")
	signupCmd.MarkFlagRequired("full-name")
}
