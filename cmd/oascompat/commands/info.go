package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/internal/cliutil"
	"github.com/erraggy/oascompat/rules"
)

// HandleInfo prints build information and the registered rules.
func HandleInfo(args []string) error {
	if len(args) > 0 {
		if args[0] == "-h" || args[0] == "--help" {
			cliutil.Writef(os.Stderr, "Usage: oascompat info\n\nPrint version information and the available rules.\n")
			return nil
		}
		return fmt.Errorf("info command takes no arguments")
	}

	cliutil.Writef(os.Stdout, "oascompat: %s\n", oascompat.Version())
	cliutil.Writef(os.Stdout, "Commit: %s\n", oascompat.Commit())
	cliutil.Writef(os.Stdout, "Build time: %s\n", oascompat.BuildTime())
	cliutil.Writef(os.Stdout, "Go version: %s (%s/%s)\n", oascompat.GoVersion(), runtime.GOOS, runtime.GOARCH)
	cliutil.Writef(os.Stdout, "Discovered rules:\n")
	for _, r := range rules.Default().Rules() {
		info := r.Info()
		cliutil.Writef(os.Stdout, "    %s: %s [%s, %s]\n", info.Code, info.ShortName, info.Type, info.Level.Title())
	}
	return nil
}
