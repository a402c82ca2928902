package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"bastionctl/client"
	"bastionctl/pkg/clierr"
	"bastionctl/pkg/validation"
)

// networkCmd groups commands for the network subsystem.
func networkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "network",
		Short:             "Configure the network subsystem",
		PersistentPreRunE: a.init,
	}
	cmd.AddCommand(networkModeCmd(a))
	return cmd
}

func networkModeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode [new-mode]",
		Short: "Show or set the network operating mode",
		Long:  fmt.Sprintf("Show the current network operating mode, or set it to one of: %s", modeNames()),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				mode, err := a.client.NetworkMode(cmd.Context())
				if err != nil {
					return clierr.FromAPI(err)
				}
				cmd.Println(mode.Mode)
				return nil
			}
			return setNetworkMode(cmd, a, args[0])
		},
	}
	return cmd
}

// setNetworkMode validates and applies a new network operating mode.
// Mode validation is a caller concern; the client ships the value as-is.
func setNetworkMode(cmd *cobra.Command, a *app, mode string) error {
	mode = strings.ToLower(mode)
	if err := validation.ValidateNetworkMode(mode); err != nil {
		return clierr.New(clierr.Validation, err.Error(), err)
	}
	if err := a.client.SetNetworkMode(cmd.Context(), client.NetworkMode{Mode: mode}); err != nil {
		return clierr.FromAPI(err)
	}
	cmd.Printf("Network mode set to %s.\n", mode)
	return nil
}

// modeNames lists the valid network modes for help output.
func modeNames() string {
	names := make([]string, 0, len(validation.NetworkModes))
	for name := range validation.NetworkModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
