package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petasbytes/taskrunner/internal/outcome"
)

// Python is the only language RunCode acknowledges.
const Python = "python"

type RunCodeInput struct {
	Code     string `json:"code" jsonschema_description:"Source code to run."`
	Language string `json:"language,omitempty" jsonschema_description:"Language of the code (default python)."`
}

var RunCodeDefinition = ToolDefinition{
	Name:        "run_code",
	Description: "Simulate running a code snippet. Nothing is executed; python snippets are acknowledged and other languages are rejected.",
	InputSchema: RunCodeInputSchema,
	Function:    runCodeTool,
}

var RunCodeInputSchema = GenerateSchema[RunCodeInput]()

// RunCode never executes code. For python it returns a fixed acknowledgement
// embedding code; any other language yields an UnsupportedInputError.
func RunCode(code, language string) Result {
	if language != Python {
		return CodeResult{
			Code:     code,
			Language: language,
			Output:   outcome.Reject(outcome.UnsupportedInputError, "Unsupported language: "+language),
		}
	}
	return CodeResult{
		Code:     code,
		Language: language,
		Output:   outcome.Ok(fmt.Sprintf("Simulated execution of code:\n%s\nOutput: Code executed successfully", code)),
	}
}

func runCodeTool(_ context.Context, input json.RawMessage) (Result, error) {
	var in RunCodeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, err
	}
	if in.Language == "" {
		in.Language = Python
	}
	return RunCode(in.Code, in.Language), nil
}
