package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	PlaylistsRequests     atomic.Int64
	PlaylistItemsRequests atomic.Int64
	VideoDetailsRequests  atomic.Int64
	SearchRequests        atomic.Int64
	AnalyzeRequests       atomic.Int64
	APIErrors             atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"playlists_requests":      metrics.PlaylistsRequests.Load(),
		"playlist_items_requests": metrics.PlaylistItemsRequests.Load(),
		"video_details_requests":  metrics.VideoDetailsRequests.Load(),
		"search_requests":         metrics.SearchRequests.Load(),
		"analyze_requests":        metrics.AnalyzeRequests.Load(),
		"api_errors":              metrics.APIErrors.Load(),
		"cache_hits":              hits,
		"cache_misses":            misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"playlists_requests", "playlist_items_requests",
		"video_details_requests", "search_requests", "analyze_requests",
		"api_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors: the *Requests counters track tool invocations (musicserver),
// APIErrors tracks upstream failures (sources).
func IncrPlaylistsRequests()     { metrics.PlaylistsRequests.Add(1) }
func IncrPlaylistItemsRequests() { metrics.PlaylistItemsRequests.Add(1) }
func IncrVideoDetailsRequests()  { metrics.VideoDetailsRequests.Add(1) }
func IncrSearchRequests()        { metrics.SearchRequests.Add(1) }
func IncrAnalyzeRequests()       { metrics.AnalyzeRequests.Add(1) }
func IncrAPIErrors()             { metrics.APIErrors.Add(1) }
