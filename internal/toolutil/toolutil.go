// Package toolutil holds small helpers shared by the MCP tool handlers.
package toolutil

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ClampLimit normalizes a user-supplied result limit: non-positive values
// fall back to def, values above max are capped.
func ClampLimit(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// TextResult wraps a plain message as a tool result. Used for terminal
// conditions that should reach the model as text rather than a protocol error
// (setup instructions, empty playlists).
func TextResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
