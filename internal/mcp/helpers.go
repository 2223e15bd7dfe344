package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"icuflow-mcp/internal/workflow"
)

// decodeArg re-marshals a decoded JSON value into a typed struct. Tool
// arguments arrive as map[string]interface{}; the round trip applies the
// struct's json tags and rejects non-integral values for integer fields.
func decodeArg(v interface{}, dst interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func decodeInputs(v interface{}) (workflow.Inputs, error) {
	if v == nil {
		return workflow.Inputs{}, fmt.Errorf("%w: missing inputs object", workflow.ErrInvalidInput)
	}
	var in workflow.Inputs
	if err := decodeArg(v, &in); err != nil {
		return workflow.Inputs{}, fmt.Errorf("%w: malformed inputs: %v", workflow.ErrInvalidInput, err)
	}
	return in, nil
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func asInt(v interface{}) int {
	if v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		var res int
		fmt.Sscanf(val, "%d", &res)
		return res
	default:
		return 0
	}
}

func asFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		var res float64
		fmt.Sscanf(val, "%g", &res)
		return res
	default:
		return 0
	}
}

func asStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, asString(item))
	}
	return out
}

// errCode maps domain errors to JSON-RPC error codes. Invalid inputs are
// the caller's fault (-32602); everything else is a server-side tool error.
func errCode(err error) int {
	if errors.Is(err, workflow.ErrInvalidInput) {
		return -32602
	}
	return -32000
}
