// Package music implements the playlist analytics core: title parsing,
// ISO-8601 duration decoding, and aggregate taste statistics. All functions
// are pure and safe for concurrent use; network access lives in sources/.
package music

// RawTrackItem is one playlist entry as returned by the catalog API,
// before any metadata inference.
type RawTrackItem struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Position int64  `json:"position"`
}

// ParsedTrack is a RawTrackItem with best-effort artist/song metadata.
// Artist is "Unknown" when no title pattern matched; Song always falls
// back to the trimmed raw title.
type ParsedTrack struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Song     string `json:"song"`
	Channel  string `json:"channel"`
	Position int64  `json:"position"`
}

// RawVideoDetail is the per-video record from the videos endpoint.
// Duration is the ISO-8601 string; DurationSeconds its decoded value.
type RawVideoDetail struct {
	VideoID         string   `json:"video_id"`
	Title           string   `json:"title"`
	Channel         string   `json:"channel"`
	Duration        string   `json:"duration"`
	DurationSeconds int      `json:"duration_seconds"`
	ViewCount       int64    `json:"view_count"`
	LikeCount       int64    `json:"like_count"`
	CategoryID      string   `json:"category_id,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// ArtistStat is one ranked artist entry in an AnalysisResult.
type ArtistStat struct {
	Artist      string   `json:"artist"`
	TrackCount  int      `json:"track_count"`
	SampleSongs []string `json:"sample_songs"`
}

// ChannelStat is one ranked channel entry in an AnalysisResult.
type ChannelStat struct {
	Channel    string `json:"channel"`
	TrackCount int    `json:"track_count"`
}

// DurationStats summarizes the decoded-duration sample. The sample is
// bounded by the upstream batch limit and is independent of TotalTracks.
type DurationStats struct {
	SampleSize      int     `json:"sample_size"`
	TotalMinutes    float64 `json:"total_minutes"`
	AvgTrackMinutes float64 `json:"avg_track_minutes"`
}

// TrackSample is the compact artist/song pair used in sample_tracks.
type TrackSample struct {
	Artist string `json:"artist"`
	Song   string `json:"song"`
}

// AnalysisResult is the full output of Analyze, serialized as-is to the
// tool caller.
type AnalysisResult struct {
	TotalTracks   int           `json:"total_tracks"`
	UniqueArtists int           `json:"unique_artists"`
	TopArtists    []ArtistStat  `json:"top_artists"`
	TopChannels   []ChannelStat `json:"top_channels"`
	DurationStats DurationStats `json:"duration_stats"`
	SampleTracks  []TrackSample `json:"sample_tracks"`
}
