package music

import (
	"math"
	"sort"
)

// Fixed emission caps for ranked statistics.
const (
	topArtistsCap  = 15
	topChannelsCap = 10
	sampleSongsCap = 3
)

// Stats is the aggregator output consumed by Analyze.
type Stats struct {
	UniqueArtists int
	TopArtists    []ArtistStat
	TopChannels   []ChannelStat
	Durations     DurationStats
}

// artistAccum accumulates per-artist state in playlist order.
type artistAccum struct {
	artist string
	count  int
	songs  []string // playlist order; capped at emission, not here
}

type channelAccum struct {
	channel string
	count   int
}

// AggregateTracks counts artist and channel frequencies and summarizes the
// duration sample. Tracks with the UnknownArtist sentinel contribute to
// channel counts but not to artist counts. An empty tracks slice is valid
// and produces zero counts.
//
// Ranking is by descending count; ties keep first-seen input order.
func AggregateTracks(tracks []ParsedTrack, durations []int) Stats {
	artistIdx := make(map[string]*artistAccum)
	channelIdx := make(map[string]*channelAccum)
	var artists []*artistAccum // first-seen order
	var channels []*channelAccum

	for _, t := range tracks {
		if t.Artist != UnknownArtist {
			acc, ok := artistIdx[t.Artist]
			if !ok {
				acc = &artistAccum{artist: t.Artist}
				artistIdx[t.Artist] = acc
				artists = append(artists, acc)
			}
			acc.count++
			acc.songs = append(acc.songs, t.Song)
		}
		if t.Channel != "" {
			acc, ok := channelIdx[t.Channel]
			if !ok {
				acc = &channelAccum{channel: t.Channel}
				channelIdx[t.Channel] = acc
				channels = append(channels, acc)
			}
			acc.count++
		}
	}

	sort.SliceStable(artists, func(i, j int) bool { return artists[i].count > artists[j].count })
	sort.SliceStable(channels, func(i, j int) bool { return channels[i].count > channels[j].count })

	topArtists := make([]ArtistStat, 0, topArtistsCap)
	for _, acc := range artists {
		if len(topArtists) == topArtistsCap {
			break
		}
		songs := acc.songs
		if len(songs) > sampleSongsCap {
			songs = songs[:sampleSongsCap]
		}
		topArtists = append(topArtists, ArtistStat{
			Artist:      acc.artist,
			TrackCount:  acc.count,
			SampleSongs: songs,
		})
	}

	topChannels := make([]ChannelStat, 0, topChannelsCap)
	for _, acc := range channels {
		if len(topChannels) == topChannelsCap {
			break
		}
		topChannels = append(topChannels, ChannelStat{Channel: acc.channel, TrackCount: acc.count})
	}

	return Stats{
		UniqueArtists: len(artists),
		TopArtists:    topArtists,
		TopChannels:   topChannels,
		Durations:     summarizeDurations(durations),
	}
}

// summarizeDurations computes the duration profile, guarding the
// zero-sample case explicitly.
func summarizeDurations(durations []int) DurationStats {
	total := 0
	for _, d := range durations {
		total += d
	}
	stats := DurationStats{SampleSize: len(durations)}
	stats.TotalMinutes = round1(float64(total) / 60)
	if len(durations) > 0 {
		stats.AvgTrackMinutes = round2(float64(total) / 60 / float64(len(durations)))
	}
	return stats
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
