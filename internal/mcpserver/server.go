// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oascompat checks as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oascompat"
)

const serverInstructions = `oascompat MCP server: detects backward incompatible changes between two Swagger 2.0 documents.

Use explain to list the rules and what they protect against, then check to compare an old and a new document.

Configuration: defaults are read from OASCOMPAT_* environment variables set in your MCP client config.

Key settings:
- OASCOMPAT_STRICT (default: false): fail the check on warnings too
- OASCOMPAT_DEFAULT_TYPE_TO_OBJECT (default: false): treat untyped schemas as objects
- OASCOMPAT_CACHE_ENABLED (default: true): disable document caching entirely
- OASCOMPAT_CACHE_MAX_SIZE (default: 10): cached documents per session
- OASCOMPAT_CACHE_TTL (default: 15m): cache TTL for file and inline documents
- OASCOMPAT_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- OASCOMPAT_ALLOW_PRIVATE_IPS (default: false): allow URLs that resolve to private addresses

Caching: loaded documents are cached per session. File entries use path+mtime as key, so they are invalidated on change.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oascompat", Version: oascompat.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Check whether a new version of a Swagger 2.0 document is backward compatible with the old one. Returns the messages reported by the compatibility rules grouped by level (ERROR, WARNING, INFO) with a reference to the offending endpoint or document path. Use rules to run only some rules or blacklist to skip some. The check fails on ERROR messages, or on any message when strict is set. Use offset/limit to paginate through messages.",
	}, handleCheck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explain",
		Description: "Explain the backward compatibility rules: code, name, level, contract type, description and documentation link. Use rules to select codes, e.g. [\"REQ-E001\", \"RES-E002\"].",
	}, handleExplain)
}

// defaultLimit is the page size used when a tool call sets no limit.
const defaultLimit = 100

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to defaultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages so
// clients do not learn the server's directory layout.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// normalizeCodes upper-cases rule codes and drops blanks.
func normalizeCodes(codes []string) []string {
	var out []string
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
