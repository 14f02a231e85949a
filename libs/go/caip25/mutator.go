package caip25

import (
	"strings"

	"github.com/cyphera/multichain-auth/libs/go/caip"
)

// MutationOp is the operation a caveat mutation resolved to
type MutationOp string

const (
	// OpNoop leaves the stored permission unchanged
	OpNoop MutationOp = "noop"
	// OpUpdateValue replaces the stored scope maps with Mutation.Value
	OpUpdateValue MutationOp = "updateValue"
	// OpRevokePermission revokes the permission entirely; the caveat value is
	// discarded
	OpRevokePermission MutationOp = "revokePermission"
)

// CaveatUpdate carries the reduced scope maps of an updateValue decision.
// The remaining caveat fields (session properties, origin flag) are preserved
// by the caller's merge.
type CaveatUpdate struct {
	RequiredScopes ScopesMap `json:"requiredScopes"`
	OptionalScopes ScopesMap `json:"optionalScopes"`
}

// Mutation is the decision returned by a caveat mutator: a single atomic
// transition from one caveat snapshot to the next state, with no intermediate
// or pending states.
type Mutation struct {
	Op    MutationOp    `json:"operation"`
	Value *CaveatUpdate `json:"value,omitempty"`
}

// RemoveAccount computes the caveat state after the given address is removed
// from the wallet. The input value is never mutated. Both sides of the
// address comparison are normalized to lowercase. When no scope object in
// either map retains an account, the permission is revoked rather than left
// dangling with empty account lists.
//
// Mutators never fail on well-formed input; callers must only pass values
// that previously passed the caveat validator.
func RemoveAccount(value CaveatValue, targetAddress string) Mutation {
	target := strings.ToLower(targetAddress)

	required := removeAccountFromScopes(value.RequiredScopes, target)
	optional := removeAccountFromScopes(value.OptionalScopes, target)

	if required.Equal(value.RequiredScopes) && optional.Equal(value.OptionalScopes) {
		return Mutation{Op: OpNoop}
	}

	if !required.HasAccounts() && !optional.HasAccounts() {
		return Mutation{Op: OpRevokePermission}
	}

	return Mutation{
		Op: OpUpdateValue,
		Value: &CaveatUpdate{
			RequiredScopes: required,
			OptionalScopes: optional,
		},
	}
}

// RemoveScope computes the caveat state after the given scope string is
// removed from the wallet, deleting it from both maps independently. A
// session whose remaining scopes all live in the reserved "wallet" namespace
// carries no externally meaningful chain authorization and is revoked.
func RemoveScope(value CaveatValue, targetScopeString string) Mutation {
	required := value.RequiredScopes.Clone()
	optional := value.OptionalScopes.Clone()

	_, inRequired := required[targetScopeString]
	_, inOptional := optional[targetScopeString]
	if !inRequired && !inOptional {
		return Mutation{Op: OpNoop}
	}
	delete(required, targetScopeString)
	delete(optional, targetScopeString)

	for _, scopes := range []ScopesMap{required, optional} {
		for scopeString := range scopes {
			scope, err := caip.ParseScopeString(scopeString)
			if err != nil || scope.Namespace != caip.NamespaceWallet {
				return Mutation{
					Op: OpUpdateValue,
					Value: &CaveatUpdate{
						RequiredScopes: required,
						OptionalScopes: optional,
					},
				}
			}
		}
	}

	return Mutation{Op: OpRevokePermission}
}

func removeAccountFromScopes(scopes ScopesMap, target string) ScopesMap {
	filtered := scopes.Clone()
	for scopeString, scopeObject := range filtered {
		var kept []string
		for _, accountID := range scopeObject.Accounts {
			account, err := caip.ParseAccountID(accountID)
			if err == nil && strings.ToLower(account.Address) == target {
				continue
			}
			kept = append(kept, accountID)
		}
		scopeObject.Accounts = kept
		filtered[scopeString] = scopeObject
	}
	return filtered
}
