// Package commands provides CLI command handlers for oascompat.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/internal/cliutil"
	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/rules"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrIncompatible is returned by HandleRun when the new document breaks
// clients of the old one. main exits with status 1 without printing it.
var ErrIncompatible = errors.New("backward incompatible changes detected")

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(os.Stdout, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// FormatSpecPath returns a display-friendly path for a document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// CodeList collects rule codes from a repeatable flag. Each value may hold
// several comma separated codes.
type CodeList []string

// String implements flag.Value.
func (c *CodeList) String() string {
	return strings.Join(*c, ",")
}

// Set implements flag.Value.
func (c *CodeList) Set(value string) error {
	for _, code := range strings.Split(value, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		*c = append(*c, strings.ToUpper(code))
	}
	return nil
}

// selectRules applies the -r and -b flags to the built-in rules.
func selectRules(include, exclude CodeList) ([]rules.Rule, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("-r/--rules and -b/--blacklist-rules are mutually exclusive")
	}
	return rules.SelectRules(rules.Default(), include, exclude)
}

// newLogger returns a text logger on w. Debug output is enabled by verbose.
func newLogger(w io.Writer, verbose bool) loader.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return loader.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadSpec loads a document from a file path, URL, or stdin ("-").
func loadSpec(ctx context.Context, specPath string, opts ...loader.Option) (*loader.Spec, error) {
	opts = append(opts,
		loader.WithContext(ctx),
		loader.WithUserAgent(oascompat.UserAgent()),
	)
	if specPath == StdinFilePath {
		opts = append(opts, loader.WithReader(os.Stdin), loader.WithSourceName(FormatSpecPath(specPath)))
	} else {
		opts = append(opts, loader.WithFilePath(specPath))
	}
	return loader.LoadWithOptions(opts...)
}
