package caip25

// Account is a single address controlled by the wallet's primary keyring
type Account struct {
	Address string `json:"address"`
}

// CapabilityProvider exposes the wallet capabilities the engine validates
// against. It is injected at construction time by the host; the engine never
// reaches into host state any other way.
type CapabilityProvider interface {
	// FindNetworkClientIDByChainID returns the id of the network client
	// serving the given eip155 chain reference. It returns an error when no
	// client exists for that chain; the engine folds any failure into
	// "unsupported" and never propagates it.
	FindNetworkClientIDByChainID(chainID string) (string, error)

	// ListAccounts returns every address currently controlled by the
	// wallet's primary keyring
	ListAccounts() []Account
}
