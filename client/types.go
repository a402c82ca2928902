package client

// Account is the authenticated user as reported by /auth/me.
type Account struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SystemInfo describes the appliance hardware and firmware.
type SystemInfo struct {
	Hostname        string `json:"hostname"`
	Model           string `json:"model"`
	FirmwareVersion string `json:"firmware_version"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}

// BatteryStatus is the UPS/battery state for appliances that carry one.
type BatteryStatus struct {
	ChargePercent int  `json:"charge_percent"`
	OnBattery     bool `json:"on_battery"`
}

// NetworkMode is the appliance's network operating mode.
type NetworkMode struct {
	Mode      string `json:"mode"` // "router", "bridge", or "access-point"
	Interface string `json:"interface,omitempty"`
}

// FirewallRule is one entry in the appliance's rule table.
type FirewallRule struct {
	ID          string `json:"id,omitempty"`
	Action      string `json:"action"` // "allow" or "deny"
	Protocol    string `json:"protocol"`
	Port        int    `json:"port"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
}

// VPNProfile is a configured VPN tunnel.
type VPNProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"` // "wireguard" or "openvpn"
	Enabled bool   `json:"enabled"`
}

// VPNStatus is the live state of the VPN subsystem.
type VPNStatus struct {
	Connected bool   `json:"connected"`
	Profile   string `json:"profile,omitempty"`
	Since     string `json:"since,omitempty"`
}

// Backup describes a configuration backup held on the appliance.
type Backup struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256,omitempty"`
}
