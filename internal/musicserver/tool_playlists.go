package musicserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_music/internal/engine"
	"github.com/anatolykoptev/go_music/internal/engine/sources"
	"github.com/anatolykoptev/go_music/internal/toolutil"
)

func registerGetMyPlaylists(server *mcp.Server, yt *sources.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_my_playlists",
		Description: "Get the authenticated user's YouTube playlists. Returns structured JSON with playlist details (id, title, description, item_count, thumbnail).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.PlaylistsInput) (*mcp.CallToolResult, engine.PlaylistsOutput, error) {
		engine.IncrPlaylistsRequests()

		// Normalized limit keeps "default" and "explicit 50" on one cache entry.
		limit := toolutil.ClampLimit(input.MaxResults, 50, 0)
		cacheKey := engine.CacheKey("get_my_playlists", strconv.Itoa(limit))
		if out, ok := engine.CacheLoadJSON[engine.PlaylistsOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		playlists, err := yt.MyPlaylists(ctx, limit)
		if err != nil {
			if res := setupResult(err); res != nil {
				return res, engine.PlaylistsOutput{}, nil
			}
			slog.Warn("get_my_playlists: fetch failed", slog.Any("error", err))
			return nil, engine.PlaylistsOutput{}, fmt.Errorf("fetch playlists: %w", err)
		}

		out := engine.PlaylistsOutput{
			Total:     len(playlists),
			Playlists: playlists,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
