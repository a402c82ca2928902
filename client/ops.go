package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Typed wrappers over the generic verb helpers for the appliance subsystems
// the CLI talks to. The client has no per-domain knowledge beyond these DTO
// shapes; validation of the values lives in callers.

// SystemInfo fetches the appliance hardware and firmware description.
func (c *Client) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	var info SystemInfo
	if err := c.Get(ctx, "/system/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Battery probes the UPS/battery state. Absent battery hardware is an
// expected condition, not a fault: a 503 degrades to ok=false with no error.
func (c *Client) Battery(ctx context.Context) (status *BatteryStatus, ok bool, err error) {
	var st BatteryStatus
	err = c.Get(ctx, "/system/battery", nil, &st)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &st, true, nil
}

// NetworkMode returns the current network operating mode.
func (c *Client) NetworkMode(ctx context.Context) (*NetworkMode, error) {
	var mode NetworkMode
	if err := c.Get(ctx, "/network/mode", nil, &mode); err != nil {
		return nil, err
	}
	return &mode, nil
}

// SetNetworkMode switches the network operating mode.
func (c *Client) SetNetworkMode(ctx context.Context, mode NetworkMode) error {
	return c.Put(ctx, "/network/mode", mode, nil)
}

// FirewallRules lists the rule table.
func (c *Client) FirewallRules(ctx context.Context) ([]FirewallRule, error) {
	var rules []FirewallRule
	if err := c.Get(ctx, "/firewall/rules", nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// AddFirewallRule appends a rule and returns it with the server-assigned ID.
func (c *Client) AddFirewallRule(ctx context.Context, rule FirewallRule) (*FirewallRule, error) {
	var created FirewallRule
	if err := c.Post(ctx, "/firewall/rules", rule, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteFirewallRule removes a rule by ID.
func (c *Client) DeleteFirewallRule(ctx context.Context, id string) error {
	return c.Delete(ctx, fmt.Sprintf("/firewall/rules/%s", id))
}

// VPNProfiles lists the configured tunnels.
func (c *Client) VPNProfiles(ctx context.Context) ([]VPNProfile, error) {
	var profiles []VPNProfile
	if err := c.Get(ctx, "/vpn/profiles", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// VPNStatus reports the live VPN state.
func (c *Client) VPNStatus(ctx context.Context) (*VPNStatus, error) {
	var status VPNStatus
	if err := c.Get(ctx, "/vpn/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Backups lists configuration backups held on the appliance.
func (c *Client) Backups(ctx context.Context) ([]Backup, error) {
	var backups []Backup
	if err := c.Get(ctx, "/backups", nil, &backups); err != nil {
		return nil, err
	}
	return backups, nil
}

// CreateBackup asks the appliance to snapshot its configuration.
func (c *Client) CreateBackup(ctx context.Context) (*Backup, error) {
	var backup Backup
	if err := c.Post(ctx, "/backups", nil, &backup); err != nil {
		return nil, err
	}
	return &backup, nil
}
