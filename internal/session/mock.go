package session

import "context"

// MockLinkHandler is a scriptable LinkHandler for tests.
type MockLinkHandler struct {
	OpenFn func(ctx context.Context, linkToken string) (LinkResult, error)

	OpenCalls    []string
	DestroyCalls int
}

// Open implements LinkHandler.Open.
func (m *MockLinkHandler) Open(ctx context.Context, linkToken string) (LinkResult, error) {
	m.OpenCalls = append(m.OpenCalls, linkToken)

	if m.OpenFn != nil {
		return m.OpenFn(ctx, linkToken)
	}
	return LinkResult{PublicToken: "public-sandbox-mock"}, nil
}

// Destroy implements LinkHandler.Destroy.
func (m *MockLinkHandler) Destroy() {
	m.DestroyCalls++
}

// Ensure MockLinkHandler implements LinkHandler.
var _ LinkHandler = (*MockLinkHandler)(nil)
