package caip25

import (
	"github.com/cyphera/multichain-auth/libs/go/caip"
	"github.com/cyphera/multichain-auth/libs/go/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Validator checks caveat values against the wallet capabilities exposed by
// an injected CapabilityProvider. It has no side effects: it only reads
// through the provider.
type Validator struct {
	provider CapabilityProvider
	logger   *zap.Logger
}

// NewValidator creates a new caveat validator
func NewValidator(provider CapabilityProvider) *Validator {
	return &Validator{
		provider: provider,
		logger:   logger.Log,
	}
}

// Validate checks a caveat value in four ordered steps, failing fast on the
// first violation:
//  1. shape: both scope maps must be present
//  2. structure: every key and nested account id must satisfy the CAIP grammar
//  3. scope support: every scope string must be servable by the wallet
//  4. account support: every referenced eip155 address must be controlled by
//     the wallet's keyring
func (v *Validator) Validate(value CaveatValue) error {
	if value.RequiredScopes == nil || value.OptionalScopes == nil {
		return errors.Wrap(ErrMalformedCaveat, "requiredScopes and optionalScopes are required")
	}

	if err := validateScopesMap(value.RequiredScopes); err != nil {
		return err
	}
	if err := validateScopesMap(value.OptionalScopes); err != nil {
		return err
	}

	for _, scopes := range []ScopesMap{value.RequiredScopes, value.OptionalScopes} {
		for scopeString := range scopes {
			if !ScopeSupported(v.provider, scopeString) {
				if v.logger != nil {
					v.logger.Debug("Rejected caveat with unsupported scope",
						zap.String("scope", scopeString))
				}
				return errors.Wrap(ErrUnsupportedScope, scopeString)
			}
		}
	}

	for _, address := range EthAccounts(value.RequiredScopes, value.OptionalScopes) {
		if !AccountSupported(v.provider, address) {
			if v.logger != nil {
				v.logger.Debug("Rejected caveat with unsupported account",
					zap.String("address", address))
			}
			return errors.Wrap(ErrUnsupportedAccount, address)
		}
	}

	return nil
}

// ValidatePermission checks that a permission carries exactly one caveat and
// that it is the authorizedScopes caveat. Permissions granted with zero,
// multiple, or foreign caveats are rejected.
func ValidatePermission(permission Permission) error {
	if len(permission.Caveats) != 1 {
		return errors.Wrapf(ErrInvalidCaveats, "expected exactly one caveat, got %d", len(permission.Caveats))
	}
	if permission.Caveats[0].Type != CaveatTypeAuthorizedScopes {
		return errors.Wrapf(ErrInvalidCaveats, "unexpected caveat type %q", permission.Caveats[0].Type)
	}
	return nil
}

func validateScopesMap(scopes ScopesMap) error {
	for scopeString, scopeObject := range scopes {
		if _, err := caip.ParseScopeString(scopeString); err != nil {
			return errors.Wrap(ErrMalformedScopesObject, scopeString)
		}
		for _, accountID := range scopeObject.Accounts {
			if _, err := caip.ParseAccountID(accountID); err != nil {
				return errors.Wrap(ErrMalformedScopesObject, accountID)
			}
		}
	}
	return nil
}
