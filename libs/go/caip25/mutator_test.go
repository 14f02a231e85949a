package caip25_test

import (
	"testing"

	"github.com/cyphera/multichain-auth/libs/go/caip25"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveAccount(t *testing.T) {
	tests := []struct {
		name         string
		value        caip25.CaveatValue
		target       string
		wantOp       caip25.MutationOp
		wantRequired caip25.ScopesMap
		wantOptional caip25.ScopesMap
	}{
		{
			name: "last account in every scope revokes the permission",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {Accounts: []string{"eip155:1:" + addrA}},
				},
				OptionalScopes:     caip25.ScopesMap{},
				IsMultichainOrigin: true,
			},
			target: addrA,
			wantOp: caip25.OpRevokePermission,
		},
		{
			name: "other accounts remain so the value is updated",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {Accounts: []string{
						"eip155:1:" + addrA,
						"eip155:1:" + addrB,
					}},
				},
				OptionalScopes:     caip25.ScopesMap{},
				IsMultichainOrigin: true,
			},
			target: addrA,
			wantOp: caip25.OpUpdateValue,
			wantRequired: caip25.ScopesMap{
				"eip155:1": {Accounts: []string{"eip155:1:" + addrB}},
			},
			wantOptional: caip25.ScopesMap{},
		},
		{
			name: "address absent from every scope is a noop",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {Accounts: []string{"eip155:1:" + addrA}},
				},
				OptionalScopes:     caip25.ScopesMap{},
				IsMultichainOrigin: false,
			},
			target: addrC,
			wantOp: caip25.OpNoop,
		},
		{
			name: "account removed across both maps",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {Accounts: []string{
						"eip155:1:" + addrA,
						"eip155:1:" + addrB,
					}},
				},
				OptionalScopes: caip25.ScopesMap{
					"eip155:137": {Accounts: []string{"eip155:137:" + addrA}},
				},
				IsMultichainOrigin: true,
			},
			target: addrA,
			wantOp: caip25.OpUpdateValue,
			wantRequired: caip25.ScopesMap{
				"eip155:1": {Accounts: []string{"eip155:1:" + addrB}},
			},
			wantOptional: caip25.ScopesMap{
				"eip155:137": {Accounts: nil},
			},
		},
		{
			name: "target address is matched case insensitively",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {Accounts: []string{"eip155:1:" + addrA}},
				},
				OptionalScopes:     caip25.ScopesMap{},
				IsMultichainOrigin: true,
			},
			target: "0XD8DA6BF26964AF9D7EED9E03E53415D37AA96045",
			wantOp: caip25.OpRevokePermission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.value.Clone()

			mutation := caip25.RemoveAccount(tt.value, tt.target)
			assert.Equal(t, tt.wantOp, mutation.Op)

			// Input snapshot is never mutated
			assert.True(t, tt.value.RequiredScopes.Equal(original.RequiredScopes))
			assert.True(t, tt.value.OptionalScopes.Equal(original.OptionalScopes))

			if tt.wantOp != caip25.OpUpdateValue {
				assert.Nil(t, mutation.Value)
				return
			}
			require.NotNil(t, mutation.Value)
			assert.True(t, mutation.Value.RequiredScopes.Equal(tt.wantRequired),
				"required scopes mismatch: %v", mutation.Value.RequiredScopes)
			assert.True(t, mutation.Value.OptionalScopes.Equal(tt.wantOptional),
				"optional scopes mismatch: %v", mutation.Value.OptionalScopes)
		})
	}
}

func TestRemoveAccount_MethodsAndNotificationsCarriedThrough(t *testing.T) {
	value := caip25.CaveatValue{
		RequiredScopes: caip25.ScopesMap{
			"eip155:1": {
				Accounts:      []string{"eip155:1:" + addrA, "eip155:1:" + addrB},
				Methods:       []string{"eth_sendTransaction", "personal_sign"},
				Notifications: []string{"accountsChanged"},
			},
		},
		OptionalScopes:     caip25.ScopesMap{},
		IsMultichainOrigin: true,
	}

	mutation := caip25.RemoveAccount(value, addrA)
	require.Equal(t, caip25.OpUpdateValue, mutation.Op)
	updated := mutation.Value.RequiredScopes["eip155:1"]
	assert.Equal(t, []string{"eth_sendTransaction", "personal_sign"}, updated.Methods)
	assert.Equal(t, []string{"accountsChanged"}, updated.Notifications)
}

func TestRemoveAccount_Idempotent(t *testing.T) {
	value := caip25.CaveatValue{
		RequiredScopes: caip25.ScopesMap{
			"eip155:1": {Accounts: []string{
				"eip155:1:" + addrA,
				"eip155:1:" + addrB,
			}},
		},
		OptionalScopes:     caip25.ScopesMap{},
		IsMultichainOrigin: true,
	}

	first := caip25.RemoveAccount(value, addrA)
	require.Equal(t, caip25.OpUpdateValue, first.Op)

	next := caip25.CaveatValue{
		RequiredScopes:     first.Value.RequiredScopes,
		OptionalScopes:     first.Value.OptionalScopes,
		IsMultichainOrigin: value.IsMultichainOrigin,
	}
	second := caip25.RemoveAccount(next, addrA)
	assert.Equal(t, caip25.OpNoop, second.Op)
}

func TestRemoveScope(t *testing.T) {
	tests := []struct {
		name         string
		value        caip25.CaveatValue
		target       string
		wantOp       caip25.MutationOp
		wantRequired caip25.ScopesMap
		wantOptional caip25.ScopesMap
	}{
		{
			name: "scope absent from both maps is a noop",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {},
				},
				OptionalScopes:     caip25.ScopesMap{},
				IsMultichainOrigin: true,
			},
			target: "eip155:137",
			wantOp: caip25.OpNoop,
		},
		{
			name: "only wallet scopes remain so the permission is revoked",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {Accounts: []string{"eip155:1:" + addrA}},
				},
				OptionalScopes: caip25.ScopesMap{
					"wallet:eip155": {},
				},
				IsMultichainOrigin: true,
			},
			target: "eip155:1",
			wantOp: caip25.OpRevokePermission,
		},
		{
			name: "no scopes remain so the permission is revoked",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1": {},
				},
				OptionalScopes:     caip25.ScopesMap{},
				IsMultichainOrigin: false,
			},
			target: "eip155:1",
			wantOp: caip25.OpRevokePermission,
		},
		{
			name: "a non wallet scope remains so the value is updated",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1":   {},
					"eip155:137": {},
				},
				OptionalScopes:     caip25.ScopesMap{},
				IsMultichainOrigin: true,
			},
			target: "eip155:1",
			wantOp: caip25.OpUpdateValue,
			wantRequired: caip25.ScopesMap{
				"eip155:137": {},
			},
			wantOptional: caip25.ScopesMap{},
		},
		{
			name: "scope removed from both maps independently",
			value: caip25.CaveatValue{
				RequiredScopes: caip25.ScopesMap{
					"eip155:1":   {},
					"eip155:137": {},
				},
				OptionalScopes: caip25.ScopesMap{
					"eip155:1": {},
				},
				IsMultichainOrigin: true,
			},
			target: "eip155:1",
			wantOp: caip25.OpUpdateValue,
			wantRequired: caip25.ScopesMap{
				"eip155:137": {},
			},
			wantOptional: caip25.ScopesMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.value.Clone()

			mutation := caip25.RemoveScope(tt.value, tt.target)
			assert.Equal(t, tt.wantOp, mutation.Op)

			assert.True(t, tt.value.RequiredScopes.Equal(original.RequiredScopes))
			assert.True(t, tt.value.OptionalScopes.Equal(original.OptionalScopes))

			if tt.wantOp != caip25.OpUpdateValue {
				assert.Nil(t, mutation.Value)
				return
			}
			require.NotNil(t, mutation.Value)
			assert.True(t, mutation.Value.RequiredScopes.Equal(tt.wantRequired))
			assert.True(t, mutation.Value.OptionalScopes.Equal(tt.wantOptional))
		})
	}
}
