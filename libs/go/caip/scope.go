// Package caip implements the CAIP-2 / CAIP-10 identifier grammar used by the
// multichain permission engine.
package caip

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Known chain namespaces
const (
	// NamespaceWallet is the reserved namespace for wallet-internal scopes
	NamespaceWallet = "wallet"
	// NamespaceEIP155 is the namespace for EVM chains (CAIP-2 eip155)
	NamespaceEIP155 = "eip155"
)

var (
	// ErrMalformedScopeString is returned when a scope string does not match
	// the CAIP-2 grammar
	ErrMalformedScopeString = errors.New("malformed scope string")
)

var (
	namespacePattern = regexp.MustCompile(`^[-a-z0-9]{3,8}$`)
	referencePattern = regexp.MustCompile(`^[-_a-zA-Z0-9]{1,32}$`)
)

// Scope is a parsed scope string: a bare namespace ("wallet", "eip155") or a
// namespace plus chain reference ("eip155:1", "wallet:eip155").
type Scope struct {
	Namespace string
	Reference string
}

// String reassembles the CAIP-2 form of the scope
func (s Scope) String() string {
	if s.Reference == "" {
		return s.Namespace
	}
	return s.Namespace + ":" + s.Reference
}

// ParseScopeString parses a scope string into its namespace and reference
// parts. The reference is empty for bare-namespace scopes. Strings that do
// not satisfy the CAIP-2 grammar are rejected rather than passed through.
func ParseScopeString(scopeString string) (Scope, error) {
	namespace := scopeString
	reference := ""
	if idx := strings.Index(scopeString, ":"); idx >= 0 {
		namespace = scopeString[:idx]
		reference = scopeString[idx+1:]
	}

	if !namespacePattern.MatchString(namespace) {
		return Scope{}, errors.Wrap(ErrMalformedScopeString, scopeString)
	}
	if reference != "" && !referencePattern.MatchString(reference) {
		return Scope{}, errors.Wrap(ErrMalformedScopeString, scopeString)
	}

	return Scope{Namespace: namespace, Reference: reference}, nil
}

// ChainCheckFunc reports whether the wallet currently has a network client
// for the given eip155 chain reference
type ChainCheckFunc func(reference string) bool

// IsSupportedScopeString reports whether the wallet can serve the given scope
// string. Scopes in the reserved "wallet" namespace are always supported.
// eip155 scopes are supported when the reference is a decimal chain id and
// chainSupported accepts it. All other namespaces are unsupported here: the
// engine natively recognizes only eip155 and wallet.
func IsSupportedScopeString(scopeString string, chainSupported ChainCheckFunc) bool {
	scope, err := ParseScopeString(scopeString)
	if err != nil {
		return false
	}

	switch scope.Namespace {
	case NamespaceWallet:
		return true
	case NamespaceEIP155:
		if _, err := strconv.ParseUint(scope.Reference, 10, 64); err != nil {
			return false
		}
		return chainSupported != nil && chainSupported(scope.Reference)
	default:
		return false
	}
}
