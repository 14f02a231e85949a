// Package wallet holds the service's view of wallet state: the networks a
// client exists for and the addresses the keyring controls. It implements
// caip25.CapabilityProvider and is the source the wallet-event endpoints
// mutate before sweeping grants.
package wallet

import (
	"strings"
	"sync"

	"github.com/cyphera/multichain-auth/libs/go/caip25"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUnknownChain is returned when no network client exists for a chain id
var ErrUnknownChain = errors.New("no network client for chain")

// Provider is a mutex-guarded in-memory capability provider
type Provider struct {
	mu       sync.RWMutex
	networks map[string]string // chainID -> network client id
	accounts []caip25.Account
}

// NewProvider creates a provider with network clients for the given chain ids
// and the given keyring addresses
func NewProvider(chainIDs []string, addresses []string) *Provider {
	p := &Provider{
		networks: make(map[string]string, len(chainIDs)),
	}
	for _, chainID := range chainIDs {
		p.networks[chainID] = uuid.New().String()
	}
	for _, address := range addresses {
		p.accounts = append(p.accounts, caip25.Account{Address: address})
	}
	return p
}

// FindNetworkClientIDByChainID implements caip25.CapabilityProvider
func (p *Provider) FindNetworkClientIDByChainID(chainID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clientID, ok := p.networks[chainID]
	if !ok {
		return "", errors.Wrap(ErrUnknownChain, chainID)
	}
	return clientID, nil
}

// ListAccounts implements caip25.CapabilityProvider
func (p *Provider) ListAccounts() []caip25.Account {
	p.mu.RLock()
	defer p.mu.RUnlock()

	accounts := make([]caip25.Account, len(p.accounts))
	copy(accounts, p.accounts)
	return accounts
}

// RemoveAccount drops an address from the keyring view. The comparison is
// case-insensitive, matching the engine's address normalization.
func (p *Provider) RemoveAccount(address string) bool {
	target := strings.ToLower(address)

	p.mu.Lock()
	defer p.mu.Unlock()

	kept := p.accounts[:0]
	removed := false
	for _, account := range p.accounts {
		if strings.ToLower(account.Address) == target {
			removed = true
			continue
		}
		kept = append(kept, account)
	}
	p.accounts = kept
	return removed
}

// RemoveNetwork drops the network client for a chain id
func (p *Provider) RemoveNetwork(chainID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.networks[chainID]; !ok {
		return false
	}
	delete(p.networks, chainID)
	return true
}
