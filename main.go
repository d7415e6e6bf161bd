// go_music — YouTube Music playlist analytics MCP server.
//
// Exposes five MCP tools: get_my_playlists, get_playlist_items,
// get_video_details, search_music, analyze_playlist.
// Runs as HTTP MCP server or stdio transport.
//
// Requires OAuth client secrets from Google Cloud Console (YouTube Data API
// v3, readonly scope); the first call triggers a one-time browser consent
// flow and persists the token for later runs.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_music/internal/engine"
	"github.com/anatolykoptev/go_music/internal/engine/sources"
	"github.com/anatolykoptev/go_music/internal/musicserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	initEngine()

	slog.Info("starting go_music",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_music",
		Version: version,
	}, nil)

	yt := sources.NewClient()
	musicserver.RegisterTools(server, yt)
	slog.Info("tools registered", slog.Int("count", 5))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_music",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		ClientSecretsFile:    env.Str("YT_CLIENT_SECRETS", "client_secrets.json"),
		TokenFile:            env.Str("YT_TOKEN_FILE", "token.json"),
		OAuthListenAddr:      env.Str("OAUTH_LISTEN_ADDR", "127.0.0.1:8484"),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 30*time.Second),
		APIRateLimit:         env.Float("YT_API_QPS", 8),
		APIRateBurst:         env.Int("YT_API_BURST", 4),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
