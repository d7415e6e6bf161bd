package musicserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_music/internal/engine"
	"github.com/anatolykoptev/go_music/internal/engine/music"
	"github.com/anatolykoptev/go_music/internal/engine/sources"
	"github.com/anatolykoptev/go_music/internal/toolutil"
)

func registerGetPlaylistItems(server *mcp.Server, yt *sources.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_playlist_items",
		Description: "Get the tracks of a YouTube playlist. Each item carries the raw video title plus the artist/song split inferred from it, the channel, and the playlist position.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.PlaylistItemsInput) (*mcp.CallToolResult, engine.PlaylistItemsOutput, error) {
		if input.PlaylistID == "" {
			return nil, engine.PlaylistItemsOutput{}, errors.New("playlist_id is required")
		}
		engine.IncrPlaylistItemsRequests()

		limit := toolutil.ClampLimit(input.MaxResults, 200, 0)
		cacheKey := engine.CacheKey("get_playlist_items", input.PlaylistID, strconv.Itoa(limit))
		if out, ok := engine.CacheLoadJSON[engine.PlaylistItemsOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		items, err := yt.PlaylistItems(ctx, input.PlaylistID, limit)
		if err != nil {
			if res := setupResult(err); res != nil {
				return res, engine.PlaylistItemsOutput{}, nil
			}
			slog.Warn("get_playlist_items: fetch failed",
				slog.String("playlist_id", input.PlaylistID), slog.Any("error", err))
			return nil, engine.PlaylistItemsOutput{}, fmt.Errorf("fetch playlist items: %w", err)
		}

		out := engine.PlaylistItemsOutput{
			PlaylistID: input.PlaylistID,
			Total:      len(items),
			Items:      music.ParseItems(items),
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
