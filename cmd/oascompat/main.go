package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/cmd/oascompat/commands"
	"github.com/erraggy/oascompat/internal/cliutil"
	"github.com/erraggy/oascompat/internal/mcpserver"
)

var commandNames = []string{"run", "explain", "info", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oascompat v%s\n", oascompat.Version())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "run":
		return exitCode(commands.HandleRun(args[1:]))
	case "explain":
		return exitCode(commands.HandleExplain(args[1:]))
	case "info":
		return exitCode(commands.HandleInfo(args[1:]))
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return exitCode(mcpserver.Run(ctx))
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		return 1
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, commands.ErrIncompatible) {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
	}
	return 1
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDistance := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	usage := `oascompat - Swagger 2.0 backward compatibility checker

Usage:
  oascompat <command> [options]

Commands:
  run        Detect backward incompatible changes between two documents
  explain    Explain the compatibility rules
  info       Print version information and the available rules
  mcp        Run the MCP server over stdio
  version    Show version information
  help       Show this help message

Examples:
  oascompat run old.yaml new.yaml
  oascompat run --json-output -b MIS-E001 old.yaml new.yaml
  oascompat explain -r REQ-E001

Run 'oascompat <command> --help' for more information on a command.
`
	fmt.Print(usage)
}
