package caip25

import (
	"strings"

	"github.com/cyphera/multichain-auth/libs/go/caip"
)

// ScopeSupported reports whether the wallet behind the provider can serve the
// given scope string. Lookup failures from the provider are treated as
// "unsupported", never surfaced.
func ScopeSupported(provider CapabilityProvider, scopeString string) bool {
	return caip.IsSupportedScopeString(scopeString, func(reference string) bool {
		_, err := provider.FindNetworkClientIDByChainID(reference)
		return err == nil
	})
}

// AccountSupported reports whether the wallet's keyring controls the given
// eip155 address. Addresses are compared case-insensitively.
func AccountSupported(provider CapabilityProvider, address string) bool {
	target := strings.ToLower(address)
	for _, account := range provider.ListAccounts() {
		if strings.ToLower(account.Address) == target {
			return true
		}
	}
	return false
}
