package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oascompat/internal/cliutil"
	"github.com/erraggy/oascompat/internal/severity"
	"github.com/erraggy/oascompat/loader"
	"github.com/erraggy/oascompat/rules"
)

// RunFlags contains flags for the run command
type RunFlags struct {
	Strict              bool
	Format              string
	JSONOutput          bool
	Rules               CodeList
	Blacklist           CodeList
	DefaultTypeToObject bool
	Timeout             time.Duration
	Workers             int
	Verbose             bool
}

// SetupRunFlags creates and configures a FlagSet for the run command.
// Returns the FlagSet and a RunFlags struct with bound flag variables.
func SetupRunFlags() (*flag.FlagSet, *RunFlags) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	flags := &RunFlags{}

	fs.BoolVar(&flags.Strict, "strict", false, "convert warnings to errors: exit 1 on any reported change")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.JSONOutput, "json-output", false, "return machine readable json output (same as --format json)")
	fs.Var(&flags.Rules, "rules", "rule `CODE` to apply, repeatable or comma separated (default: all rules)")
	fs.Var(&flags.Rules, "r", "shorthand for --rules")
	fs.Var(&flags.Blacklist, "blacklist-rules", "rule `CODE` to ignore, repeatable or comma separated")
	fs.Var(&flags.Blacklist, "b", "shorthand for --blacklist-rules")
	fs.BoolVar(&flags.DefaultTypeToObject, "default-type-to-object", false, "treat schemas without a type as objects")
	fs.DurationVar(&flags.Timeout, "timeout", 0, "abort when the check takes longer than this (0 means no limit)")
	fs.IntVar(&flags.Workers, "workers", 0, "number of rules evaluated concurrently (default: number of CPUs)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug information to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "shorthand for --verbose")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oascompat run [flags] <old> <new>\n\n")
		cliutil.Writef(fs.Output(), "Detect backward incompatible changes between two Swagger 2.0 documents.\n")
		cliutil.Writef(fs.Output(), "Each document may be a file path, a URL, or - for stdin.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nRules:\n")
		for _, r := range rules.Default().Rules() {
			info := r.Info()
			cliutil.Writef(fs.Output(), "  %s  %s\n", info.Code, info.ShortName)
		}
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oascompat run api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "  oascompat run -r REQ-E001,RES-E002 api-v1.yaml api-v2.yaml\n")
		cliutil.Writef(fs.Output(), "  oascompat run -b MIS-E001 --json-output api-v1.yaml api-v2.yaml | jq '.ERROR'\n")
		cliutil.Writef(fs.Output(), "  oascompat run --strict https://example.com/v1.yaml https://example.com/v2.yaml\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    No ERROR level change found (no change at all in --strict mode)\n")
		cliutil.Writef(fs.Output(), "  1    Incompatible changes found, or the check failed\n")
	}

	return fs, flags
}

// HandleRun executes the run command. It returns ErrIncompatible when the
// check fails.
func HandleRun(args []string) error {
	fs, flags := SetupRunFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("run command requires exactly two file paths or URLs")
	}
	oldPath, newPath := fs.Arg(0), fs.Arg(1)
	if oldPath == StdinFilePath && newPath == StdinFilePath {
		return fmt.Errorf("only one document can be read from stdin")
	}

	if flags.JSONOutput {
		flags.Format = FormatJSON
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Workers < 0 {
		return fmt.Errorf("invalid workers %d: must not be negative", flags.Workers)
	}
	selected, err := selectRules(flags.Rules, flags.Blacklist)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}

	logger := newLogger(os.Stderr, flags.Verbose)
	loadOpts := []loader.Option{
		loader.WithLogger(logger),
		loader.WithDefaultTypeToObject(flags.DefaultTypeToObject),
	}
	oldSpec, err := loadSpec(ctx, oldPath, loadOpts...)
	if err != nil {
		return fmt.Errorf("loading old document: %w", err)
	}
	newSpec, err := loadSpec(ctx, newPath, loadOpts...)
	if err != nil {
		return fmt.Errorf("loading new document: %w", err)
	}

	statusOpts := []rules.Option{rules.WithRules(selected...), rules.WithLogger(logger)}
	if flags.Workers > 0 {
		statusOpts = append(statusOpts, rules.WithConcurrency(flags.Workers))
	}
	startTime := time.Now()
	status, err := rules.CompatibilityStatus(ctx, oldSpec, newSpec, statusOpts...)
	if err != nil {
		return fmt.Errorf("checking compatibility: %w", err)
	}
	logger.Debug("compatibility checked",
		"rules", len(selected), "messages", status.Count(), "elapsed", time.Since(startTime))

	if flags.Format == FormatText {
		printMessages(status)
	} else if err := OutputStructured(messagesByLevel(status), flags.Format); err != nil {
		return err
	}

	if status.Failed(flags.Strict) {
		return ErrIncompatible
	}
	return nil
}

// printMessages prints the messages grouped by level, from INFO to ERROR:
//
//	ERROR rules:
//		[CODE] Short name: reference (documentation: link)
func printMessages(status *rules.Status) {
	byLevel := status.ByLevel()
	for _, level := range severity.Levels {
		messages := byLevel[level]
		if len(messages) == 0 {
			continue
		}
		lines := make([]string, len(messages))
		for i, m := range messages {
			lines[i] = m.String()
		}
		cliutil.Writef(os.Stdout, "%s rules:\n\t%s\n", level, strings.Join(lines, "\n\t"))
	}
}

// messagesByLevel is the structured output: level name to messages, for
// levels with at least one message.
func messagesByLevel(status *rules.Status) map[string][]rules.MessageJSON {
	out := make(map[string][]rules.MessageJSON)
	for level, messages := range status.ByLevel() {
		for _, m := range messages {
			out[level.String()] = append(out[level.String()], m.JSON())
		}
	}
	return out
}
