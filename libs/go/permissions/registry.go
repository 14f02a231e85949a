// Package permissions holds the host-side grant registry: it stores granted
// endowment permissions per origin and applies caveat mutation decisions when
// wallet state changes.
package permissions

import (
	"sync"
	"time"

	"github.com/cyphera/multichain-auth/libs/go/caip25"
	"github.com/cyphera/multichain-auth/libs/go/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrGrantNotFound is returned when no grant exists for an origin
var ErrGrantNotFound = errors.New("grant not found")

// Grant is one granted endowment:caip25 permission for an origin
type Grant struct {
	ID         uuid.UUID         `json:"id"`
	Origin     string            `json:"origin"`
	Permission caip25.Permission `json:"permission"`
	GrantedAt  time.Time         `json:"grantedAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Registry is an in-memory store of grants keyed by origin. Writes of the
// authoritative caveat state are serialized behind the mutex, so concurrent
// wallet-state-change sweeps never race each other.
type Registry struct {
	mu        sync.RWMutex
	grants    map[string]*Grant
	validator *caip25.Validator
	logger    *zap.Logger
}

// NewRegistry creates a registry validating grants against the given provider
func NewRegistry(provider caip25.CapabilityProvider) *Registry {
	log := logger.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		grants:    make(map[string]*Grant),
		validator: caip25.NewValidator(provider),
		logger:    log,
	}
}

// Grant validates the caveat value and stores a new grant for the origin,
// replacing any previous one. Validation failure rejects the whole request;
// partial grants are never produced.
func (r *Registry) Grant(origin string, value caip25.CaveatValue) (*Grant, error) {
	permission := caip25.Permission{
		ParentCapability: caip25.EndowmentCaip25,
		Caveats: []caip25.Caveat{{
			Type:  caip25.CaveatTypeAuthorizedScopes,
			Value: value,
		}},
	}

	if err := caip25.ValidatePermission(permission); err != nil {
		return nil, err
	}
	if err := r.validator.Validate(value); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	grant := &Grant{
		ID:         uuid.New(),
		Origin:     origin,
		Permission: permission,
		GrantedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	r.grants[origin] = grant
	r.mu.Unlock()

	r.logger.Info("Granted multichain permission",
		zap.String("origin", origin),
		zap.String("grant_id", grant.ID.String()),
	)
	return grant, nil
}

// Get returns the grant for an origin
func (r *Registry) Get(origin string) (*Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	grant, ok := r.grants[origin]
	if !ok {
		return nil, errors.Wrap(ErrGrantNotFound, origin)
	}
	return grant, nil
}

// Revoke removes the grant for an origin. Revoking an unknown origin is not
// an error.
func (r *Registry) Revoke(origin string) {
	r.mu.Lock()
	delete(r.grants, origin)
	r.mu.Unlock()
}

// Count returns the number of stored grants
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.grants)
}

// UpdatePermissionsByCaveat runs the mutator against every grant holding a
// caveat of the given type and applies the returned decision: updates merge
// the reduced scope maps into the stored caveat (session properties and the
// origin flag are preserved), revocations drop the grant entirely. It returns
// the number of grants changed.
func (r *Registry) UpdatePermissionsByCaveat(caveatType string, mutate func(caip25.CaveatValue) caip25.Mutation) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for origin, grant := range r.grants {
		for i, caveat := range grant.Permission.Caveats {
			if caveat.Type != caveatType {
				continue
			}

			mutation := mutate(caveat.Value)
			switch mutation.Op {
			case caip25.OpNoop:

			case caip25.OpUpdateValue:
				merged := caveat.Value.Clone()
				merged.RequiredScopes = mutation.Value.RequiredScopes
				merged.OptionalScopes = mutation.Value.OptionalScopes
				grant.Permission.Caveats[i].Value = merged
				grant.UpdatedAt = time.Now().UTC()
				changed++
				r.logger.Info("Updated permission caveat",
					zap.String("origin", origin),
					zap.String("caveat_type", caveatType),
				)

			case caip25.OpRevokePermission:
				delete(r.grants, origin)
				changed++
				r.logger.Info("Revoked permission",
					zap.String("origin", origin),
					zap.String("caveat_type", caveatType),
				)
			}
		}
	}
	return changed
}

// OnAccountRemoved sweeps every grant after an address left the keyring
func (r *Registry) OnAccountRemoved(address string) int {
	return r.UpdatePermissionsByCaveat(caip25.CaveatTypeAuthorizedScopes, func(value caip25.CaveatValue) caip25.Mutation {
		return caip25.RemoveAccount(value, address)
	})
}

// OnNetworkRemoved sweeps every grant after a network left the wallet
func (r *Registry) OnNetworkRemoved(scopeString string) int {
	return r.UpdatePermissionsByCaveat(caip25.CaveatTypeAuthorizedScopes, func(value caip25.CaveatValue) caip25.Mutation {
		return caip25.RemoveScope(value, scopeString)
	})
}
