package validation

import (
	"fmt"
	"strings"
)

const (
	MinWorkers = 1
	MaxWorkers = 8

	MinPort = 1
	MaxPort = 65535
)

// NetworkModes maps valid mode names to a short description for help output.
var NetworkModes = map[string]string{
	"router":       "NAT between WAN and LAN",
	"bridge":       "transparent layer-2 bridge",
	"access-point": "wireless access point only",
}

func ValidateWorkerCount(workers int) error {
	if workers < MinWorkers || workers > MaxWorkers {
		return fmt.Errorf("worker count must be between %d and %d, got %d", MinWorkers, MaxWorkers, workers)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

func ValidateNetworkMode(mode string) error {
	if _, ok := NetworkModes[strings.ToLower(mode)]; !ok {
		return fmt.Errorf("invalid network mode: %s (must be one of: router, bridge, access-point)", mode)
	}
	return nil
}

func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("port must be between %d and %d, got %d", MinPort, MaxPort, port)
	}
	return nil
}

func ValidateRuleAction(action string) error {
	validActions := map[string]bool{
		"allow": true,
		"deny":  true,
	}
	if !validActions[strings.ToLower(action)] {
		return fmt.Errorf("invalid rule action: %s (must be one of: allow, deny)", action)
	}
	return nil
}

func ValidateProtocol(protocol string) error {
	validProtocols := map[string]bool{
		"tcp": true,
		"udp": true,
		"any": true,
	}
	if !validProtocols[strings.ToLower(protocol)] {
		return fmt.Errorf("invalid protocol: %s (must be one of: tcp, udp, any)", protocol)
	}
	return nil
}
