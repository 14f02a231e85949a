// Package caip25 implements the multichain permission-authorization engine:
// validation of requested CAIP-25 scope sets against wallet capabilities, and
// the caveat mutations applied when an account or network is removed from the
// wallet.
package caip25

import "encoding/json"

// ScopeObject holds the data associated with one scope string: the accounts
// authorized under it plus the method and notification lists, which the
// engine carries through unchanged.
type ScopeObject struct {
	Accounts      []string `json:"accounts"`
	Methods       []string `json:"methods,omitempty"`
	Notifications []string `json:"notifications,omitempty"`
}

// Clone returns a deep copy of the scope object
func (o ScopeObject) Clone() ScopeObject {
	clone := ScopeObject{}
	if o.Accounts != nil {
		clone.Accounts = append([]string{}, o.Accounts...)
	}
	if o.Methods != nil {
		clone.Methods = append([]string{}, o.Methods...)
	}
	if o.Notifications != nil {
		clone.Notifications = append([]string{}, o.Notifications...)
	}
	return clone
}

// Equal reports field-wise equality with another scope object
func (o ScopeObject) Equal(other ScopeObject) bool {
	return stringSlicesEqual(o.Accounts, other.Accounts) &&
		stringSlicesEqual(o.Methods, other.Methods) &&
		stringSlicesEqual(o.Notifications, other.Notifications)
}

// ScopesMap maps a scope string to its scope object
type ScopesMap map[string]ScopeObject

// Clone returns a deep copy of the map. A nil map clones to nil.
func (m ScopesMap) Clone() ScopesMap {
	if m == nil {
		return nil
	}
	clone := make(ScopesMap, len(m))
	for scopeString, scopeObject := range m {
		clone[scopeString] = scopeObject.Clone()
	}
	return clone
}

// Equal reports field-wise equality with another scopes map
func (m ScopesMap) Equal(other ScopesMap) bool {
	if len(m) != len(other) {
		return false
	}
	for scopeString, scopeObject := range m {
		otherObject, ok := other[scopeString]
		if !ok || !scopeObject.Equal(otherObject) {
			return false
		}
	}
	return true
}

// HasAccounts reports whether any scope object in the map still carries at
// least one account
func (m ScopesMap) HasAccounts() bool {
	for _, scopeObject := range m {
		if len(scopeObject.Accounts) > 0 {
			return true
		}
	}
	return false
}

// CaveatValue is the full persisted authorization record for one origin: the
// result of a CAIP-25 handshake. It is created once at grant time and only
// ever replaced wholesale by mutator decisions, never mutated in place.
type CaveatValue struct {
	RequiredScopes     ScopesMap                  `json:"requiredScopes"`
	OptionalScopes     ScopesMap                  `json:"optionalScopes"`
	SessionProperties  map[string]json.RawMessage `json:"sessionProperties,omitempty"`
	IsMultichainOrigin bool                       `json:"isMultichainOrigin"`
}

// Clone returns a deep copy of the caveat value
func (v CaveatValue) Clone() CaveatValue {
	clone := CaveatValue{
		RequiredScopes:     v.RequiredScopes.Clone(),
		OptionalScopes:     v.OptionalScopes.Clone(),
		IsMultichainOrigin: v.IsMultichainOrigin,
	}
	if v.SessionProperties != nil {
		clone.SessionProperties = make(map[string]json.RawMessage, len(v.SessionProperties))
		for key, raw := range v.SessionProperties {
			clone.SessionProperties[key] = append(json.RawMessage{}, raw...)
		}
	}
	return clone
}

// Caveat is a restriction attached to a granted permission. For this engine
// the only recognized type is authorizedScopes.
type Caveat struct {
	Type  string      `json:"type"`
	Value CaveatValue `json:"value"`
}

// Permission is a granted endowment as seen by the host permission framework
type Permission struct {
	ParentCapability string   `json:"parentCapability"`
	Caveats          []Caveat `json:"caveats"`
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
