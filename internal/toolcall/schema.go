package toolcall

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ApplyPatchToolName is the function name the model uses to request a patch
// application.
const ApplyPatchToolName = "apply_patch"

// applyPatchSchema constrains apply_patch arguments: a single required patch
// string that opens with the begin marker.
const applyPatchSchema = `{
  "type": "object",
  "required": ["patch"],
  "additionalProperties": false,
  "properties": {
    "patch": {
      "type": "string",
      "pattern": "^\\*\\*\\* Begin Patch"
    }
  }
}`

var (
	applyPatchSchemaLoader     gojsonschema.JSONLoader
	applyPatchSchemaLoaderOnce sync.Once
)

// ValidationError reports the individual schema issues found in a tool call's
// arguments.
type ValidationError struct {
	Issues []string
}

func (e ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "apply_patch arguments failed schema validation"
	}
	return strings.Join(e.Issues, "; ")
}

// ValidateApplyPatch checks the arguments of an apply_patch call against the
// tool's JSON schema. A ValidationError describes schema violations; other
// errors indicate the validator itself failed.
func ValidateApplyPatch(arguments map[string]any) error {
	applyPatchSchemaLoaderOnce.Do(func() {
		applyPatchSchemaLoader = gojsonschema.NewStringLoader(applyPatchSchema)
	})

	result, err := gojsonschema.Validate(applyPatchSchemaLoader, gojsonschema.NewGoLoader(arguments))
	if err != nil {
		return fmt.Errorf("failed to validate apply_patch arguments: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return ValidationError{Issues: issues}
}

// PatchArgument extracts the patch text from validated apply_patch arguments.
func PatchArgument(arguments map[string]any) (string, error) {
	if err := ValidateApplyPatch(arguments); err != nil {
		return "", err
	}
	text, _ := arguments["patch"].(string)
	return text, nil
}
