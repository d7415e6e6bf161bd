package engine

import "github.com/anatolykoptev/go_music/internal/engine/music"

// --- Tool input types ---

type PlaylistsInput struct {
	MaxResults int `json:"max_results,omitempty" jsonschema:"Maximum number of playlists to return (default: 50)"`
}

type PlaylistItemsInput struct {
	PlaylistID string `json:"playlist_id" jsonschema:"The YouTube playlist ID"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of items to return (default: 200)"`
}

type VideoDetailsInput struct {
	VideoIDs []string `json:"video_ids" jsonschema:"List of YouTube video IDs (max 50)"`
}

type SearchMusicInput struct {
	Query      string `json:"query" jsonschema:"Search query (e.g. 'artist name song title')"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum results to return (default: 10, cap: 25)"`
}

type AnalyzePlaylistInput struct {
	PlaylistID string `json:"playlist_id" jsonschema:"The YouTube playlist ID to analyze"`
}

// --- Tool output types (JSON responses) ---

// Playlist is one entry of the get_my_playlists response.
type Playlist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemCount   int64  `json:"item_count"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type PlaylistsOutput struct {
	Total     int        `json:"total"`
	Playlists []Playlist `json:"playlists"`
}

type PlaylistItemsOutput struct {
	PlaylistID string              `json:"playlist_id"`
	Total      int                 `json:"total"`
	Items      []music.ParsedTrack `json:"items"`
}

type VideoDetailsOutput struct {
	Total  int                    `json:"total"`
	Videos []music.RawVideoDetail `json:"videos"`
}

// SearchResult is one entry of the search_music response; artist/song are
// inferred from the result title the same way playlist items are.
type SearchResult struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Song        string `json:"song"`
	Channel     string `json:"channel"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type SearchMusicOutput struct {
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Results []SearchResult `json:"results"`
}

type AnalyzePlaylistOutput struct {
	PlaylistID string                `json:"playlist_id"`
	Analysis   *music.AnalysisResult `json:"analysis,omitempty"`
	// Error carries the terminal empty-playlist message; Analysis is nil then.
	Error string `json:"error,omitempty"`
}
