package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/rules"
)

type checkInput struct {
	Old                 specInput `json:"old"                              jsonschema:"The old document, as deployed and used by clients"`
	New                 specInput `json:"new"                              jsonschema:"The new document to check against the old one"`
	Rules               []string  `json:"rules,omitempty"                  jsonschema:"Rule codes to run (default: all rules)"`
	Blacklist           []string  `json:"blacklist,omitempty"              jsonschema:"Rule codes to skip"`
	Strict              *bool     `json:"strict,omitempty"                 jsonschema:"Fail on warnings and infos too (default from OASCOMPAT_STRICT)"`
	DefaultTypeToObject *bool     `json:"default_type_to_object,omitempty" jsonschema:"Treat schemas without a type as objects (default from OASCOMPAT_DEFAULT_TYPE_TO_OBJECT)"`
	Offset              int       `json:"offset,omitempty"                 jsonschema:"Skip the first N messages"`
	Limit               int       `json:"limit,omitempty"                  jsonschema:"Maximum number of messages to return (default 100)"`
}

type checkMessage struct {
	Level         string `json:"level"`
	Code          string `json:"code"`
	ShortName     string `json:"short_name"`
	Reference     string `json:"reference"`
	Documentation string `json:"documentation,omitempty"`
}

type checkOutput struct {
	Compatible   bool           `json:"compatible"`
	Strict       bool           `json:"strict"`
	RulesRun     []string       `json:"rules_run"`
	TotalCount   int            `json:"total_count"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	InfoCount    int            `json:"info_count"`
	Returned     int            `json:"returned"`
	Messages     []checkMessage `json:"messages,omitempty"`
	Summary      string         `json:"summary"`
}

func handleCheck(ctx context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	strict := cfg.Strict
	if input.Strict != nil {
		strict = *input.Strict
	}
	typeToObject := cfg.DefaultTypeToObject
	if input.DefaultTypeToObject != nil {
		typeToObject = *input.DefaultTypeToObject
	}

	selected, err := rules.SelectRules(rules.Default(), normalizeCodes(input.Rules), normalizeCodes(input.Blacklist))
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	var oldSpec, newSpec *loader.Spec
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if oldSpec, err = input.Old.resolve(gctx, typeToObject); err != nil {
			return fmt.Errorf("old: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if newSpec, err = input.New.resolve(gctx, typeToObject); err != nil {
			return fmt.Errorf("new: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return errResult(err), checkOutput{}, nil
	}

	status, err := rules.CompatibilityStatus(ctx, oldSpec, newSpec,
		rules.WithRules(selected...),
		rules.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	output := checkOutput{
		Compatible: !status.Failed(strict),
		Strict:     strict,
		RulesRun:   make([]string, 0, len(selected)),
	}
	for _, r := range selected {
		output.RulesRun = append(output.RulesRun, r.Info().Code)
	}

	all := status.Messages()
	messages := make([]checkMessage, 0, len(all))
	for _, m := range all {
		switch m.Level {
		case rules.LevelError:
			output.ErrorCount++
		case rules.LevelWarning:
			output.WarningCount++
		default:
			output.InfoCount++
		}
		messages = append(messages, checkMessage{
			Level:         m.Level.String(),
			Code:          m.Rule.Code,
			ShortName:     m.Rule.ShortName,
			Reference:     m.Reference,
			Documentation: m.Rule.DocumentationLink,
		})
	}
	output.TotalCount = len(messages)
	output.Messages = paginate(messages, input.Offset, input.Limit)
	output.Returned = len(output.Messages)
	output.Summary = buildCheckSummary(output)

	return nil, output, nil
}

func buildCheckSummary(output checkOutput) string {
	if output.TotalCount == 0 {
		return "No backward incompatible changes detected."
	}

	summary := "Backward compatible. "
	if !output.Compatible {
		summary = "Backward incompatible. "
	}
	summary += formatCount(output.TotalCount, "message") + " reported"
	if output.ErrorCount > 0 {
		summary += " (" + formatCount(output.ErrorCount, "error") + ")"
	}
	summary += "."
	if output.Returned < output.TotalCount {
		summary += fmt.Sprintf(" Showing %d; use offset/limit to see the rest.", output.Returned)
	}
	return summary
}
