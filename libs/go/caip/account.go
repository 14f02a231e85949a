package caip

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrMalformedAccountID is returned when an account id string does not split
// into the expected namespace:reference:address components
var ErrMalformedAccountID = errors.New("malformed account id")

// AccountID is a parsed CAIP-10 account identifier
// ("namespace:reference:address", e.g. "eip155:1:0xabc...").
type AccountID struct {
	Namespace string
	Reference string
	Address   string
}

// String reassembles the CAIP-10 form of the account id
func (a AccountID) String() string {
	return a.Namespace + ":" + a.Reference + ":" + a.Address
}

// ChainID returns the CAIP-2 chain identifier the account belongs to
func (a AccountID) ChainID() string {
	return a.Namespace + ":" + a.Reference
}

// ParseAccountID parses a CAIP-10 account identifier. The string must split
// into exactly three colon-delimited parts, and the address must be
// syntactically valid for its namespace (a hex address for eip155).
func ParseAccountID(accountID string) (AccountID, error) {
	parts := strings.Split(accountID, ":")
	if len(parts) != 3 {
		return AccountID{}, errors.Wrap(ErrMalformedAccountID, accountID)
	}

	namespace, reference, address := parts[0], parts[1], parts[2]
	if !namespacePattern.MatchString(namespace) || !referencePattern.MatchString(reference) {
		return AccountID{}, errors.Wrap(ErrMalformedAccountID, accountID)
	}

	switch namespace {
	case NamespaceEIP155:
		if !common.IsHexAddress(address) {
			return AccountID{}, errors.Wrap(ErrMalformedAccountID, accountID)
		}
	default:
		if address == "" {
			return AccountID{}, errors.Wrap(ErrMalformedAccountID, accountID)
		}
	}

	return AccountID{Namespace: namespace, Reference: reference, Address: address}, nil
}
