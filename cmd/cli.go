package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"bastionctl/auth"
	"bastionctl/client"
	"bastionctl/db"
)

// defaultServerURL is used when neither --server nor BASTION_URL is set.
const defaultServerURL = "http://bastion.local/api/v1"

// app holds the wired dependencies shared by all commands. The client is
// constructed once per invocation and passed by reference; there is no
// package-level client instance.
type app struct {
	serverURL string
	gdb       *gorm.DB
	client    *client.Client
}

func Execute() {
	a := &app{}
	rootCmd := createRootCmd(a)

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	err := rootCmd.Execute()
	a.close()
	if err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		exitWithError(err)
	}
}

func createRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bastionctl",
		Short: "A command-line client for the Bastion appliance",
	}

	rootCmd.PersistentFlags().StringVarP(&a.serverURL, "server", "s",
		os.Getenv("BASTION_URL"), "Appliance API base URL (defaults to $BASTION_URL)")

	rootCmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		passwdCmd(a),
		systemCmd(a),
		networkCmd(a),
		firewallCmd(a),
		vpnCmd(a),
		backupCmd(a),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

// init opens the state database and constructs the API client. It runs as
// PersistentPreRunE for every command that talks to the appliance.
func (a *app) init(cmd *cobra.Command, args []string) error {
	if a.client != nil {
		return nil
	}
	if a.serverURL == "" {
		a.serverURL = defaultServerURL
	}

	gdb, err := db.Open(db.DefaultPath())
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize state database")
		return err
	}
	a.gdb = gdb

	store := auth.NewDBStore(db.NewTokenRepository(gdb))
	cl, err := client.New(client.Config{
		BaseURL: a.serverURL,
		Store:   store,
	})
	if err != nil {
		return err
	}
	cl.Session().OnExpired(func() {
		cmd.PrintErrln("Session expired. Please run 'bastionctl login'.")
	})
	a.client = cl
	return nil
}

func (a *app) close() {
	if a.gdb == nil {
		return
	}
	if err := db.Close(a.gdb); err != nil {
		log.Error().Err(err).Msg("Failed to close the state database.")
	}
}
