package musicserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_music/internal/engine"
	"github.com/anatolykoptev/go_music/internal/engine/sources"
)

// maxDetailIDs is the API's batch limit for the videos endpoint.
const maxDetailIDs = 50

func registerGetVideoDetails(server *mcp.Server, yt *sources.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_video_details",
		Description: "Get details for up to 50 YouTube videos in one call: title, channel, ISO-8601 duration plus decoded seconds, view/like counts, category, and tags.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.VideoDetailsInput) (*mcp.CallToolResult, engine.VideoDetailsOutput, error) {
		if len(input.VideoIDs) == 0 {
			return nil, engine.VideoDetailsOutput{}, errors.New("video_ids is required")
		}
		engine.IncrVideoDetailsRequests()

		ids := input.VideoIDs
		if len(ids) > maxDetailIDs {
			ids = ids[:maxDetailIDs]
		}

		cacheKey := engine.CacheKey("get_video_details", strings.Join(ids, ","))
		if out, ok := engine.CacheLoadJSON[engine.VideoDetailsOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		videos, err := yt.VideoDetails(ctx, ids)
		if err != nil {
			if res := setupResult(err); res != nil {
				return res, engine.VideoDetailsOutput{}, nil
			}
			slog.Warn("get_video_details: fetch failed",
				slog.Int("ids", len(ids)), slog.Any("error", err))
			return nil, engine.VideoDetailsOutput{}, fmt.Errorf("fetch video details: %w", err)
		}

		out := engine.VideoDetailsOutput{
			Total:  len(videos),
			Videos: videos,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
