package system

import (
	"context"
	"reflect"
	"testing"
)

type fakeLister []string

func (f fakeLister) ToolNames() []string { return []string(f) }

func TestToolExecuteListsRegisteredTools(t *testing.T) {
	tool := New(fakeLister{"message.send", "memory.query"})
	outcome, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data := outcome.Data.(map[string]any)
	got := data["tools"].([]string)
	want := []string{"message.send", "memory.query"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tools = %v, want %v", got, want)
	}
}
