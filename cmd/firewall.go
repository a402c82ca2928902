package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bastionctl/client"
	"bastionctl/pkg/clierr"
	"bastionctl/pkg/validation"
)

// firewallCmd groups commands for the firewall subsystem.
func firewallCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "firewall",
		Short:             "Manage firewall rules",
		PersistentPreRunE: a.init,
	}
	cmd.AddCommand(firewallListCmd(a), firewallAddCmd(a), firewallDeleteCmd(a))
	return cmd
}

func firewallListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List firewall rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.client.FirewallRules(cmd.Context())
			if err != nil {
				return clierr.FromAPI(err)
			}
			if len(rules) == 0 {
				cmd.Println("No firewall rules configured.")
				return nil
			}
			rows := make([][]string, 0, len(rules))
			for _, r := range rules {
				rows = append(rows, []string{
					r.ID, r.Action, r.Protocol, strconv.Itoa(r.Port), r.Source, r.Description,
				})
			}
			renderTable([]string{"ID", "Action", "Protocol", "Port", "Source", "Description"}, rows)
			return nil
		},
	}
}

func firewallAddCmd(a *app) *cobra.Command {
	var (
		action      string
		protocol    string
		port        int
		source      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a firewall rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			action = strings.ToLower(action)
			protocol = strings.ToLower(protocol)
			if err := validation.ValidateRuleAction(action); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			if err := validation.ValidateProtocol(protocol); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			if err := validation.ValidatePort(port); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}

			created, err := a.client.AddFirewallRule(cmd.Context(), client.FirewallRule{
				Action:      action,
				Protocol:    protocol,
				Port:        port,
				Source:      source,
				Description: description,
			})
			if err != nil {
				return clierr.FromAPI(err)
			}
			cmd.Printf("Rule %s added.\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", "", "Rule action [allow, deny]")
	cmd.Flags().StringVarP(&protocol, "protocol", "p", "any", "Protocol [tcp, udp, any]")
	cmd.Flags().IntVarP(&port, "port", "P", 0, "Destination port")
	cmd.Flags().StringVar(&source, "source", "", "Source address or CIDR (optional)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Rule description (optional)")
	_ = cmd.MarkFlagRequired("action")
	_ = cmd.MarkFlagRequired("port")

	return cmd
}

func firewallDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [rule-id]",
		Short: "Delete a firewall rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateNonEmptyString("rule ID", args[0]); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			if err := a.client.DeleteFirewallRule(cmd.Context(), args[0]); err != nil {
				return clierr.FromAPI(err)
			}
			cmd.Printf("Rule %s deleted.\n", args[0])
			return nil
		},
	}
}
