package toolkit

import "encoding/json"

// PlanSchema is the JSON schema every Plan must validate against before
// the executor is allowed to run it (spec invariant I4).
var PlanSchema = json.RawMessage(`{
  "type": "object",
  "required": ["steps", "reasoning"],
  "properties": {
    "steps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["tool", "args"],
        "properties": {
          "tool": {"type": "string", "minLength": 1},
          "args": {"type": "object"},
          "reason": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "reasoning": {"type": "string"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "source": {"type": "string"}
  }
}`)

// planSchemaID is an arbitrary stable resource ID for the compiled cache.
const planSchemaID = "nexuscore://schemas/plan.json"

// ValidatePlan checks a decoded plan document against PlanSchema.
func (v *SchemaValidator) ValidatePlan(decoded any) error {
	return v.Validate(planSchemaID, PlanSchema, decoded)
}
