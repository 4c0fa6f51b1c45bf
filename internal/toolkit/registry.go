package toolkit

import (
	"encoding/json"
	"sync"
	"time"
)

// registeredTool pairs a Tool with its mandatory output schema.
type registeredTool struct {
	tool         Tool
	outputSchema json.RawMessage
}

// Registry is the process-wide table from tool name to wrapped function
// (spec §4.1). It is read-only at steady state: all registration happens
// once at init (spec §5's shared-state policy).
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]registeredTool
	validator *SchemaValidator
	metrics   MetricsSink
	clock     func() time.Time
	traceSeq  *traceSequencer
}

// NewRegistry creates an empty registry. sink may be nil (a no-op sink is
// used then).
func NewRegistry(sink MetricsSink) *Registry {
	if sink == nil {
		sink = NoopMetricsSink{}
	}
	return &Registry{
		tools:     make(map[string]registeredTool),
		validator: NewSchemaValidator(),
		metrics:   sink,
		clock:     time.Now,
		traceSeq:  newTraceSequencer(),
	}
}

// Register adds a tool along with its mandatory JSON output schema. A
// tool registered without a schema is never reachable via Execute —
// callers must always pass a non-empty schema.
func (r *Registry) Register(tool Tool, outputSchema json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = registeredTool{tool: tool, outputSchema: outputSchema}
}

// Get returns the tool registered under name, if any.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.tool, true
}

// HasSchema reports whether name was registered with a non-empty output
// schema.
func (r *Registry) HasSchema(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.tools[name]
	return ok && len(rt.outputSchema) > 0
}

// ToolNames returns the names of every registered tool, for
// system.capabilities-style introspection.
func (r *Registry) ToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}
