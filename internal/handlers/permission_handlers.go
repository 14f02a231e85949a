package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cyphera/multichain-auth/internal/wallet"
	"github.com/cyphera/multichain-auth/libs/go/caip25"
	"github.com/cyphera/multichain-auth/libs/go/permissions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// PermissionHandler handles permission grant, validation, and wallet-event
// endpoints
type PermissionHandler struct {
	provider *wallet.Provider
	registry *permissions.Registry
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(provider *wallet.Provider, registry *permissions.Registry) *PermissionHandler {
	return &PermissionHandler{
		provider: provider,
		registry: registry,
	}
}

// GrantRequest is the grant endpoint payload. The caveat is kept as raw JSON
// so it can be schema-validated before decoding.
type GrantRequest struct {
	Origin string          `json:"origin" binding:"required"`
	Caveat json.RawMessage `json:"caveat" binding:"required"`
}

// AccountRemovedRequest is the account-removed wallet event payload
type AccountRemovedRequest struct {
	Address string `json:"address" binding:"required"`
}

// NetworkRemovedRequest is the network-removed wallet event payload
type NetworkRemovedRequest struct {
	ChainID string `json:"chainId" binding:"required"`
	Scope   string `json:"scope" binding:"required"`
}

// SweepResponse reports how many grants a wallet-event sweep changed
type SweepResponse struct {
	Changed int `json:"changed"`
}

// ValidateCaveat checks a caveat document against the wire schema and the
// wallet's current capabilities without storing anything
func (h *PermissionHandler) ValidateCaveat(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	value, err := caip25.ParseCaveatValue(body)
	if err != nil {
		sendError(c, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	if err := caip25.NewValidator(h.provider).Validate(value); err != nil {
		sendError(c, http.StatusUnprocessableEntity, validationMessage(err), err)
		return
	}

	sendSuccess(c, http.StatusOK, SuccessResponse{Message: "caveat is valid"})
}

// CreateGrant validates the caveat and stores a grant for the origin
func (h *PermissionHandler) CreateGrant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	value, err := caip25.ParseCaveatValue(req.Caveat)
	if err != nil {
		sendError(c, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	grant, err := h.registry.Grant(req.Origin, value)
	if err != nil {
		sendError(c, http.StatusUnprocessableEntity, validationMessage(err), err)
		return
	}

	sendSuccess(c, http.StatusCreated, grant)
}

// GetGrant returns the stored grant for an origin
func (h *PermissionHandler) GetGrant(c *gin.Context) {
	origin := c.Param("origin")

	grant, err := h.registry.Get(origin)
	if err != nil {
		sendError(c, http.StatusNotFound, "Grant not found", err)
		return
	}

	sendSuccess(c, http.StatusOK, grant)
}

// RevokeGrant removes the stored grant for an origin
func (h *PermissionHandler) RevokeGrant(c *gin.Context) {
	origin := c.Param("origin")
	h.registry.Revoke(origin)
	sendSuccess(c, http.StatusOK, SuccessResponse{Message: "grant revoked"})
}

// AccountRemoved removes an address from the wallet view and sweeps every
// grant holding the authorization caveat
func (h *PermissionHandler) AccountRemoved(c *gin.Context) {
	var req AccountRemovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.provider.RemoveAccount(req.Address)
	changed := h.registry.OnAccountRemoved(req.Address)
	sendSuccess(c, http.StatusOK, SweepResponse{Changed: changed})
}

// NetworkRemoved removes a network client from the wallet view and sweeps
// every grant holding the authorization caveat
func (h *PermissionHandler) NetworkRemoved(c *gin.Context) {
	var req NetworkRemovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.provider.RemoveNetwork(req.ChainID)
	changed := h.registry.OnNetworkRemoved(req.Scope)
	sendSuccess(c, http.StatusOK, SweepResponse{Changed: changed})
}

// validationMessage maps engine errors to stable client-facing messages
func validationMessage(err error) string {
	switch errors.Cause(err) {
	case caip25.ErrMalformedCaveat:
		return "Malformed caveat"
	case caip25.ErrMalformedScopesObject:
		return "Malformed scopes object"
	case caip25.ErrUnsupportedScope:
		return "Unsupported scope"
	case caip25.ErrUnsupportedAccount:
		return "Unsupported account"
	case caip25.ErrInvalidCaveats:
		return "Invalid caveats"
	default:
		return "Invalid caveat"
	}
}
