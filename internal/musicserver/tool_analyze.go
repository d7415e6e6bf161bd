package musicserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_music/internal/engine"
	"github.com/anatolykoptev/go_music/internal/engine/music"
	"github.com/anatolykoptev/go_music/internal/engine/sources"
)

// analyzeItemsMax bounds how much of a playlist one analysis fetches.
const analyzeItemsMax = 500

func registerAnalyzePlaylist(server *mcp.Server, yt *sources.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_playlist",
		Description: "Analyze a YouTube playlist's musical content: top artists and channels by track count, duration statistics over a sample of tracks, and a preview of parsed artist/song pairs.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.AnalyzePlaylistInput) (*mcp.CallToolResult, engine.AnalyzePlaylistOutput, error) {
		if input.PlaylistID == "" {
			return nil, engine.AnalyzePlaylistOutput{}, errors.New("playlist_id is required")
		}
		engine.IncrAnalyzeRequests()

		cacheKey := engine.CacheKey("analyze_playlist", input.PlaylistID)
		if out, ok := engine.CacheLoadJSON[engine.AnalyzePlaylistOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		items, err := yt.PlaylistItems(ctx, input.PlaylistID, analyzeItemsMax)
		if err != nil {
			if res := setupResult(err); res != nil {
				return res, engine.AnalyzePlaylistOutput{}, nil
			}
			slog.Warn("analyze_playlist: fetch failed",
				slog.String("playlist_id", input.PlaylistID), slog.Any("error", err))
			return nil, engine.AnalyzePlaylistOutput{}, fmt.Errorf("fetch playlist items: %w", err)
		}

		// Duration stats come from a bounded sample so large playlists stay
		// within one videos batch.
		var details []music.RawVideoDetail
		if ids := music.SampleVideoIDs(items); len(ids) > 0 {
			details, err = yt.VideoDetails(ctx, ids)
			if err != nil {
				slog.Warn("analyze_playlist: detail fetch failed, continuing without durations",
					slog.String("playlist_id", input.PlaylistID), slog.Any("error", err))
				details = nil
			}
		}

		analysis, err := music.Analyze(items, details)
		if err != nil {
			if errors.Is(err, music.ErrEmptyPlaylist) {
				out := engine.AnalyzePlaylistOutput{
					PlaylistID: input.PlaylistID,
					Error:      err.Error(),
				}
				return nil, out, nil
			}
			return nil, engine.AnalyzePlaylistOutput{}, err
		}

		out := engine.AnalyzePlaylistOutput{
			PlaylistID: input.PlaylistID,
			Analysis:   analysis,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
