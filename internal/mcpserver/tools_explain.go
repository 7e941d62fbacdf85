package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oascompat/rules"
)

type explainInput struct {
	Rules []string `json:"rules,omitempty" jsonschema:"Rule codes to explain (default: all rules)"`
}

type ruleExplanation struct {
	Code          string `json:"code"`
	ShortName     string `json:"short_name"`
	Level         string `json:"level"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	Documentation string `json:"documentation,omitempty"`
}

type explainOutput struct {
	Count int               `json:"count"`
	Rules []ruleExplanation `json:"rules"`
}

func handleExplain(_ context.Context, _ *mcp.CallToolRequest, input explainInput) (*mcp.CallToolResult, explainOutput, error) {
	selected, err := rules.SelectRules(rules.Default(), normalizeCodes(input.Rules), nil)
	if err != nil {
		return errResult(err), explainOutput{}, nil
	}

	output := explainOutput{Rules: make([]ruleExplanation, 0, len(selected))}
	for _, r := range selected {
		info := r.Info()
		output.Rules = append(output.Rules, ruleExplanation{
			Code:          info.Code,
			ShortName:     info.ShortName,
			Level:         info.Level.String(),
			Type:          info.Type.String(),
			Description:   info.Description,
			Documentation: info.DocumentationLink,
		})
	}
	output.Count = len(output.Rules)
	return nil, output, nil
}
