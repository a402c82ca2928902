package cmd

import (
	"github.com/spf13/cobra"

	"bastionctl/pkg/clierr"
)

// vpnCmd groups commands for the VPN subsystem.
func vpnCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "vpn",
		Short:             "Show VPN profiles and status",
		PersistentPreRunE: a.init,
	}
	cmd.AddCommand(vpnListCmd(a), vpnStatusCmd(a))
	return cmd
}

func vpnListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured VPN profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.client.VPNProfiles(cmd.Context())
			if err != nil {
				return clierr.FromAPI(err)
			}
			if len(profiles) == 0 {
				cmd.Println("No VPN profiles configured.")
				return nil
			}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				rows = append(rows, []string{p.ID, p.Name, p.Type, yesNo(p.Enabled)})
			}
			renderTable([]string{"ID", "Name", "Type", "Enabled"}, rows)
			return nil
		},
	}
}

func vpnStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the live VPN state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.client.VPNStatus(cmd.Context())
			if err != nil {
				return clierr.FromAPI(err)
			}
			if !status.Connected {
				cmd.Println("VPN is not connected.")
				return nil
			}
			cmd.Printf("Connected via %s since %s.\n", status.Profile, status.Since)
			return nil
		},
	}
}
