package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockCapabilityProviderForTest creates a new mock CapabilityProvider for testing
func NewMockCapabilityProviderForTest(t *testing.T) *MockCapabilityProvider {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockCapabilityProvider(ctrl)
}
