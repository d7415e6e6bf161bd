package music

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Title parsing is a best-effort heuristic over free-text video titles.
// Callers must treat "Unknown" as a legitimate artist value, never an error.

const (
	// UnknownArtist is the sentinel artist for titles with no recognizable pattern.
	UnknownArtist = "Unknown"

	maxArtistRunes = 100
	maxSongRunes   = 200
)

// qualifierRE matches one bracketed/parenthesized qualifier like
// "(Official Video)", "[Lyrics]", "(Official Music Audio)", "[4K]".
var qualifierRE = regexp.MustCompile(`(?i)\s*[(\[](?:Official\s*)?(?:Music\s*)?(?:Video|Audio|Lyrics?|HD|4K|Live|Remix|Cover)[)\]]`)

// separatorREs are tried in order; the first match with valid parts wins.
var separatorREs = []*regexp.Regexp{
	regexp.MustCompile(`^(.+?)\s*[-–—:]\s*(.+?)$`), // Artist - Song / Artist: Song
	regexp.MustCompile(`^(.+?)\s*\|\s*(.+?)$`),     // Artist | Song
}

// ParseTitle splits a video title into artist and song.
// "Adele - Hello (Official Video)" → ("Adele", "Hello").
// Unmatchable titles yield (UnknownArtist, trimmed title). Never fails.
func ParseTitle(title string) (artist, song string) {
	clean := title
	if loc := qualifierRE.FindStringIndex(clean); loc != nil {
		clean = clean[:loc[0]] + clean[loc[1]:]
	}
	clean = strings.TrimSpace(clean)

	for _, re := range separatorREs {
		m := re.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		artist = strings.TrimSpace(m[1])
		song = strings.TrimSpace(m[2])
		if artist != "" && song != "" &&
			utf8.RuneCountInString(artist) < maxArtistRunes &&
			utf8.RuneCountInString(song) < maxSongRunes {
			return artist, song
		}
	}

	return UnknownArtist, strings.TrimSpace(title)
}

// ParseItems derives ParsedTracks from raw playlist items, preserving order.
func ParseItems(items []RawTrackItem) []ParsedTrack {
	tracks := make([]ParsedTrack, len(items))
	for i, it := range items {
		artist, song := ParseTitle(it.Title)
		tracks[i] = ParsedTrack{
			VideoID:  it.VideoID,
			Title:    it.Title,
			Artist:   artist,
			Song:     song,
			Channel:  it.Channel,
			Position: it.Position,
		}
	}
	return tracks
}
