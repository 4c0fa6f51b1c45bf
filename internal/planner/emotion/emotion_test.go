package emotion

import "testing"

func TestDefaultStateIsNeutral(t *testing.T) {
	Set(StateNeutral)
	if Current() != StateNeutral {
		t.Fatalf("expected neutral default, got %s", Current())
	}
}

func TestSetAndCurrentRoundTrip(t *testing.T) {
	Set(StatePlayful)
	defer Set(StateNeutral)

	if Current() != StatePlayful {
		t.Fatalf("expected playful, got %s", Current())
	}
	if PromptBias() == "" {
		t.Fatal("expected a non-empty prompt bias")
	}
}
