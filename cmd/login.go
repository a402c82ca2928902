package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bastionctl/pkg/clierr"
	"bastionctl/pkg/validation"
)

// loginCmd creates the command for authenticating against the appliance.
func loginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "login",
		Short:             "Login to the appliance",
		Long:              "Login to the appliance using your username and password",
		PersistentPreRunE: a.init,
		RunE: func(cmd *cobra.Command, args []string) error {
			username := promptForInput("Username: ")
			password := promptForPassword("Password: ")

			if err := validation.ValidateNonEmptyString("username", username); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			if err := validation.ValidateNonEmptyString("password", password); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}

			if err := a.client.Login(cmd.Context(), username, password); err != nil {
				return clierr.FromAPI(err)
			}
			cmd.Println("Login was successful.")
			return nil
		},
	}
	return cmd
}

// logoutCmd revokes the session on the appliance and clears local credentials.
func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "logout",
		Short:             "Logout from the appliance",
		PersistentPreRunE: a.init,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return clierr.FromAPI(err)
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}

// whoamiCmd shows the account the current session belongs to.
func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "whoami",
		Short:             "Show the logged-in account",
		PersistentPreRunE: a.init,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := a.client.Me(cmd.Context())
			if err != nil {
				return clierr.FromAPI(err)
			}
			cmd.Printf("%s (%s)\n", account.Username, account.Role)
			return nil
		},
	}
}

// passwdCmd changes the account password.
func passwdCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "passwd",
		Short:             "Change the account password",
		PersistentPreRunE: a.init,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := promptForPassword("Current password: ")
			next := promptForPassword("New password: ")

			if err := validation.ValidateNonEmptyString("new password", next); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}

			if err := a.client.ChangePassword(cmd.Context(), current, next); err != nil {
				return clierr.FromAPI(err)
			}
			cmd.Println("Password changed.")
			return nil
		},
	}
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password without echoing it.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}
