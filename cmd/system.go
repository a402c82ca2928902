package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"bastionctl/pkg/clierr"
)

// systemCmd groups commands for the appliance's system subsystem.
func systemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "system",
		Short:             "Show appliance system state",
		PersistentPreRunE: a.init,
	}
	cmd.AddCommand(systemInfoCmd(a), systemBatteryCmd(a))
	return cmd
}

func systemInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show hardware and firmware information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.client.SystemInfo(cmd.Context())
			if err != nil {
				return clierr.FromAPI(err)
			}
			renderTable(
				[]string{"Hostname", "Model", "Firmware", "Uptime"},
				[][]string{{
					info.Hostname,
					info.Model,
					info.FirmwareVersion,
					(time.Duration(info.UptimeSeconds) * time.Second).String(),
				}},
			)
			return nil
		},
	}
}

func systemBatteryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "battery",
		Short: "Show UPS/battery state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok, err := a.client.Battery(cmd.Context())
			if err != nil {
				return clierr.FromAPI(err)
			}
			if !ok {
				cmd.Println("No battery hardware present.")
				return nil
			}
			cmd.Printf("Charge: %d%%, on battery: %s\n", status.ChargePercent, yesNo(status.OnBattery))
			return nil
		},
	}
}
