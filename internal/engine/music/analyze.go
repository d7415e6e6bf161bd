package music

import "errors"

// ErrEmptyPlaylist is the terminal outcome for a playlist with no items.
// It is a recognized result, distinct from a zeroed aggregate; the tool
// layer maps it to a human-readable payload instead of failing the call.
var ErrEmptyPlaylist = errors.New("playlist is empty or not found")

// DetailSampleSize caps the per-analysis video-detail sample, matching the
// upstream batch-query limit of 50 IDs per call.
const DetailSampleSize = 50

// sample_tracks preview bound in an AnalysisResult.
const sampleTracksCap = 10

// Analyze runs the full analytics pipeline over raw playlist items and a
// bounded sample of video details. The detail sample may be shorter than
// items (and usually is); duration statistics are computed over whatever
// sample is available. Deterministic: identical inputs produce identical
// results.
func Analyze(items []RawTrackItem, details []RawVideoDetail) (*AnalysisResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyPlaylist
	}

	tracks := ParseItems(items)

	durations := make([]int, len(details))
	for i, d := range details {
		durations[i] = DecodeDuration(d.Duration)
	}

	stats := AggregateTracks(tracks, durations)

	samples := tracks
	if len(samples) > sampleTracksCap {
		samples = samples[:sampleTracksCap]
	}
	sampleTracks := make([]TrackSample, len(samples))
	for i, t := range samples {
		sampleTracks[i] = TrackSample{Artist: t.Artist, Song: t.Song}
	}

	return &AnalysisResult{
		TotalTracks:   len(tracks),
		UniqueArtists: stats.UniqueArtists,
		TopArtists:    stats.TopArtists,
		TopChannels:   stats.TopChannels,
		DurationStats: stats.Durations,
		SampleTracks:  sampleTracks,
	}, nil
}

// SampleVideoIDs returns the video IDs of at most the first DetailSampleSize
// items, for the detail batch query.
func SampleVideoIDs(items []RawTrackItem) []string {
	n := len(items)
	if n > DetailSampleSize {
		n = DetailSampleSize
	}
	ids := make([]string, 0, n)
	for _, it := range items[:n] {
		if it.VideoID != "" {
			ids = append(ids, it.VideoID)
		}
	}
	return ids
}
