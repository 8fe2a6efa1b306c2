// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mockguard.dev/pkg/mockguard/internal/controller"
	m "mockguard.dev/pkg/mockguard/internal/model"
)

// MockUI is a testify mock of controller.UI.
type MockUI struct {
	mock.Mock
}

var _ controller.UI = (*MockUI)(nil)

// NewMockUI creates a mock and registers its expectations check on cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// Start provides a mock function.
func (_m *MockUI) Start(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// Close provides a mock function.
func (_m *MockUI) Close(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// DisplayScanStart provides a mock function.
func (_m *MockUI) DisplayScanStart(ctx context.Context, root m.Path) {
	_m.Called(ctx, root)
}

// DisplayPairs provides a mock function.
func (_m *MockUI) DisplayPairs(ctx context.Context, pairs []m.TestFilePair) {
	_m.Called(ctx, pairs)
}

// DisplayNoPairs provides a mock function.
func (_m *MockUI) DisplayNoPairs(ctx context.Context, root m.Path) {
	_m.Called(ctx, root)
}

// DisplayReport provides a mock function.
func (_m *MockUI) DisplayReport(ctx context.Context, report m.PairReport) {
	_m.Called(ctx, report)
}

// DisplaySummary provides a mock function.
func (_m *MockUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	_m.Called(ctx, summary)
}

// DisplayError provides a mock function.
func (_m *MockUI) DisplayError(ctx context.Context, err error) {
	_m.Called(ctx, err)
}

// DisplayWatching provides a mock function.
func (_m *MockUI) DisplayWatching(ctx context.Context, root m.Path) {
	_m.Called(ctx, root)
}
