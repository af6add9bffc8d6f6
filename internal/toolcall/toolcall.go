// Package toolcall extracts apply_patch tool invocations from LLM responses
// and validates their arguments before the patch engine sees them.
package toolcall

import "encoding/json"

// Call is one tool invocation requested by the model.
type Call struct {
	Name      string
	Arguments map[string]any
}

type responseEnvelope struct {
	Message struct {
		ToolCalls []struct {
			Type     string `json:"type"`
			Function struct {
				Name      string `json:"name"`
				Arguments string `json:"arguments"`
			} `json:"function"`
		} `json:"tool_calls"`
	} `json:"message"`
}

// FromResponse extracts the tool calls carried by a raw LLM response payload.
// Entries that are not function calls or carry no name are skipped; malformed
// argument JSON degrades to empty arguments rather than failing the whole
// response. Returns nil when the payload holds no usable calls.
func FromResponse(raw []byte) ([]Call, error) {
	var envelope responseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	var calls []Call
	for _, entry := range envelope.Message.ToolCalls {
		if entry.Type != "function" || entry.Function.Name == "" {
			continue
		}
		arguments := map[string]any{}
		if entry.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(entry.Function.Arguments), &arguments); err != nil {
				arguments = map[string]any{}
			}
		}
		calls = append(calls, Call{Name: entry.Function.Name, Arguments: arguments})
	}
	if len(calls) == 0 {
		return nil, nil
	}
	return calls, nil
}
