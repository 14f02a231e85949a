package caip25

import "github.com/pkg/errors"

// Validation errors surfaced at grant/update time. Each one is fatal to the
// single grant operation: the permission framework rejects the whole request,
// never producing a partial grant.
var (
	// ErrMalformedCaveat is returned when required top-level caveat fields
	// are missing or of the wrong type
	ErrMalformedCaveat = errors.New("malformed caip25 caveat")

	// ErrMalformedScopesObject is returned when a scope map entry or a nested
	// account id fails the CAIP grammar
	ErrMalformedScopesObject = errors.New("malformed scopes object")

	// ErrUnsupportedScope is returned when a requested scope string is not
	// one the wallet can serve
	ErrUnsupportedScope = errors.New("unsupported scope")

	// ErrUnsupportedAccount is returned when a requested eip155 address is
	// not controlled by the wallet
	ErrUnsupportedAccount = errors.New("unsupported account")

	// ErrInvalidCaveats is returned when a permission does not carry exactly
	// one authorizedScopes caveat
	ErrInvalidCaveats = errors.New("invalid caveats")
)
