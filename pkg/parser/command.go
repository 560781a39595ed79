package parser

import (
	"fmt"
	"regexp"
	"strings"

	"stargate-bridge/pkg/types"
)

// ParseBridgeCommand parses a natural language bridge command
// Examples:
//   - "bridge 100 USDC from ethereum to polygon"
//   - "1.5 USDT from bsc to avalanche"
func ParseBridgeCommand(command string) (*types.BridgeCommand, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))

	// Remove the word "BRIDGE" if present at the beginning
	command = strings.TrimPrefix(command, "BRIDGE ")

	// Pattern: <amount> <token> FROM <network> TO <network>
	pattern := regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9]+)\s+FROM\s+([A-Z0-9\-]+)\s+TO\s+([A-Z0-9\-]+)$`)

	matches := pattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid bridge command format. Expected: 'bridge <amount> <token> from <network> to <network>' (e.g., 'bridge 100 USDC from ethereum to polygon')")
	}

	return &types.BridgeCommand{
		Amount:        matches[1],
		Token:         matches[2],
		SourceNetwork: strings.ToLower(matches[3]),
		DestNetwork:   strings.ToLower(matches[4]),
	}, nil
}

// ValidateBridgeCommand validates that a bridge command has all required fields
func ValidateBridgeCommand(cmd *types.BridgeCommand) error {
	if cmd.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if cmd.Token == "" {
		return fmt.Errorf("token is required")
	}
	if cmd.SourceNetwork == "" {
		return fmt.Errorf("source network is required")
	}
	if cmd.DestNetwork == "" {
		return fmt.Errorf("destination network is required")
	}
	if cmd.SourceNetwork == cmd.DestNetwork {
		return fmt.Errorf("source and destination networks must differ")
	}
	return nil
}
