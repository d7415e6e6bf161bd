// Package musicserver registers the YouTube Music MCP tools.
package musicserver

import (
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_music/internal/engine/sources"
	"github.com/anatolykoptev/go_music/internal/toolutil"
)

// RegisterTools registers all playlist and music tools on the given MCP
// server: get_my_playlists, get_playlist_items, get_video_details,
// search_music, analyze_playlist. All tools share one API client.
func RegisterTools(server *mcp.Server, yt *sources.Client) {
	registerGetMyPlaylists(server, yt)
	registerGetPlaylistItems(server, yt)
	registerGetVideoDetails(server, yt)
	registerSearchMusic(server, yt)
	registerAnalyzePlaylist(server, yt)
}

// setupResult maps sources.ErrSetupRequired to a textual tool result so the
// model sees actionable setup instructions instead of a protocol error.
// Returns nil when err is something else.
func setupResult(err error) *mcp.CallToolResult {
	if errors.Is(err, sources.ErrSetupRequired) {
		return toolutil.TextResult("Setup required: " + err.Error())
	}
	return nil
}
