package caip25

import "github.com/cyphera/multichain-auth/libs/go/caip"

// EthAccounts collects the address component of every eip155 account id
// referenced across the given scope maps and returns the de-duplicated set.
// Order is not meaningful; the result feeds validation only and is never
// persisted.
func EthAccounts(scopeMaps ...ScopesMap) []string {
	seen := make(map[string]struct{})
	var addresses []string
	for _, scopes := range scopeMaps {
		for _, scopeObject := range scopes {
			for _, accountID := range scopeObject.Accounts {
				account, err := caip.ParseAccountID(accountID)
				if err != nil || account.Namespace != caip.NamespaceEIP155 {
					continue
				}
				if _, ok := seen[account.Address]; ok {
					continue
				}
				seen[account.Address] = struct{}{}
				addresses = append(addresses, account.Address)
			}
		}
	}
	return addresses
}
