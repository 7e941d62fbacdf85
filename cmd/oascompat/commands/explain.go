package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oascompat/internal/cliutil"
	"github.com/erraggy/oascompat/rules"
)

// ExplainFlags contains flags for the explain command
type ExplainFlags struct {
	Rules     CodeList
	Blacklist CodeList
	NoColor   bool
}

// SetupExplainFlags creates and configures a FlagSet for the explain command.
// Returns the FlagSet and an ExplainFlags struct with bound flag variables.
func SetupExplainFlags() (*flag.FlagSet, *ExplainFlags) {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)
	flags := &ExplainFlags{}

	fs.Var(&flags.Rules, "rules", "rule `CODE` to explain, repeatable or comma separated (default: all rules)")
	fs.Var(&flags.Rules, "r", "shorthand for --rules")
	fs.Var(&flags.Blacklist, "blacklist-rules", "rule `CODE` to leave out, repeatable or comma separated")
	fs.Var(&flags.Blacklist, "b", "shorthand for --blacklist-rules")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oascompat explain [flags]\n\n")
		cliutil.Writef(fs.Output(), "Explain why the selected rules report a change as backward incompatible.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oascompat explain\n")
		cliutil.Writef(fs.Output(), "  oascompat explain -r REQ-E001 -r RES-E002\n")
	}

	return fs, flags
}

// HandleExplain executes the explain command
func HandleExplain(args []string) error {
	fs, flags := SetupExplainFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("explain command takes no arguments")
	}

	selected, err := selectRules(flags.Rules, flags.Blacklist)
	if err != nil {
		return err
	}

	colorize := !flags.NoColor && cliutil.ColorEnabled(os.Stdout)
	cliutil.Writef(os.Stdout, "%s\n", rules.ExplainAll(selected, colorize))
	return nil
}
