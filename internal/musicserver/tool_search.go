package musicserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_music/internal/engine"
	"github.com/anatolykoptev/go_music/internal/engine/sources"
	"github.com/anatolykoptev/go_music/internal/toolutil"
)

func registerSearchMusic(server *mcp.Server, yt *sources.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_music",
		Description: "Search YouTube for music videos. Results are restricted to the Music category and each title is split into artist/song the same way playlist items are.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SearchMusicInput) (*mcp.CallToolResult, engine.SearchMusicOutput, error) {
		if input.Query == "" {
			return nil, engine.SearchMusicOutput{}, errors.New("query is required")
		}
		engine.IncrSearchRequests()

		limit := toolutil.ClampLimit(input.MaxResults, 10, 25)
		cacheKey := engine.CacheKey("search_music", input.Query, strconv.Itoa(limit))
		if out, ok := engine.CacheLoadJSON[engine.SearchMusicOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		results, err := yt.SearchMusic(ctx, input.Query, limit)
		if err != nil {
			if res := setupResult(err); res != nil {
				return res, engine.SearchMusicOutput{}, nil
			}
			slog.Warn("search_music: search failed",
				slog.String("query", input.Query), slog.Any("error", err))
			return nil, engine.SearchMusicOutput{}, fmt.Errorf("search music: %w", err)
		}

		out := engine.SearchMusicOutput{
			Query:   input.Query,
			Total:   len(results),
			Results: results,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
