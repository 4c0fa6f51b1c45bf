package llmclient

import "context"

// MockProvider returns a fixed reply regardless of input, used by
// mock-mode (spec §4.6 step 1) and in tests that exercise the planner
// without a real API key.
type MockProvider struct {
	Reply string
	Err   error
}

// Name implements Provider.
func (m *MockProvider) Name() string { return "mock" }

// Complete implements Provider.
func (m *MockProvider) Complete(context.Context, string, string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
