package sources

import (
	"testing"

	"github.com/anatolykoptev/go_music/internal/engine/music"
)

const samplePlaylistsPage = `{
	"items": [
		{
			"id": "PL123",
			"snippet": {
				"title": "Road Trip Mix",
				"description": "songs for driving",
				"thumbnails": {"medium": {"url": "https://i.ytimg.com/pl123.jpg"}}
			},
			"contentDetails": {"itemCount": 42}
		},
		{
			"id": "",
			"snippet": {"title": "broken entry"},
			"contentDetails": {"itemCount": 0}
		},
		{
			"id": "PL456",
			"snippet": {"title": "Focus", "description": ""},
			"contentDetails": {"itemCount": 7}
		}
	],
	"nextPageToken": "CAUQAA"
}`

func TestParsePlaylistsPage(t *testing.T) {
	playlists, next, err := parsePlaylistsPage([]byte(samplePlaylistsPage))
	if err != nil {
		t.Fatalf("parsePlaylistsPage error: %v", err)
	}
	if next != "CAUQAA" {
		t.Errorf("nextPageToken = %q, want CAUQAA", next)
	}
	// Entry without an ID is skipped.
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}

	p := playlists[0]
	if p.ID != "PL123" || p.Title != "Road Trip Mix" {
		t.Errorf("playlist 0 = %+v", p)
	}
	if p.ItemCount != 42 {
		t.Errorf("item_count = %d, want 42", p.ItemCount)
	}
	if p.Thumbnail != "https://i.ytimg.com/pl123.jpg" {
		t.Errorf("thumbnail = %q", p.Thumbnail)
	}

	if playlists[1].ID != "PL456" || playlists[1].ItemCount != 7 {
		t.Errorf("playlist 1 = %+v", playlists[1])
	}
}

const samplePlaylistItemsPage = `{
	"items": [
		{
			"snippet": {
				"title": "Adele - Hello (Official Video)",
				"videoOwnerChannelTitle": "AdeleVEVO",
				"position": 0,
				"resourceId": {"videoId": "vid1"}
			}
		},
		{
			"snippet": {
				"title": "Deleted video",
				"videoOwnerChannelTitle": "",
				"position": 1,
				"resourceId": {"videoId": ""}
			}
		},
		{
			"snippet": {
				"title": "Queen | Bohemian Rhapsody",
				"videoOwnerChannelTitle": "Queen Official",
				"position": 2,
				"resourceId": {"videoId": "vid3"}
			}
		}
	]
}`

func TestParsePlaylistItemsPage(t *testing.T) {
	items, next, err := parsePlaylistItemsPage([]byte(samplePlaylistItemsPage))
	if err != nil {
		t.Fatalf("parsePlaylistItemsPage error: %v", err)
	}
	if next != "" {
		t.Errorf("nextPageToken = %q, want empty (last page)", next)
	}
	// Item with a blank video ID (deleted video) is skipped.
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	want := music.RawTrackItem{
		VideoID:  "vid1",
		Title:    "Adele - Hello (Official Video)",
		Channel:  "AdeleVEVO",
		Position: 0,
	}
	if items[0] != want {
		t.Errorf("item 0 = %+v, want %+v", items[0], want)
	}
	if items[1].VideoID != "vid3" || items[1].Position != 2 {
		t.Errorf("item 1 = %+v", items[1])
	}
}

const sampleVideosPage = `{
	"items": [
		{
			"id": "vid1",
			"snippet": {
				"title": "Adele - Hello (Official Video)",
				"channelTitle": "AdeleVEVO",
				"categoryId": "10",
				"tags": ["Adele", "Hello", "pop"]
			},
			"contentDetails": {"duration": "PT6M7S"},
			"statistics": {"viewCount": "3000000000", "likeCount": "20000000"}
		},
		{
			"id": "vid2",
			"snippet": {"title": "no stats upload", "channelTitle": "Someone"},
			"contentDetails": {"duration": "bogus"},
			"statistics": {}
		}
	]
}`

func TestParseVideoDetails(t *testing.T) {
	videos, err := parseVideoDetails([]byte(sampleVideosPage))
	if err != nil {
		t.Fatalf("parseVideoDetails error: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}

	v := videos[0]
	if v.VideoID != "vid1" || v.Channel != "AdeleVEVO" {
		t.Errorf("video 0 = %+v", v)
	}
	if v.Duration != "PT6M7S" || v.DurationSeconds != 367 {
		t.Errorf("duration = %q/%d, want PT6M7S/367", v.Duration, v.DurationSeconds)
	}
	if v.ViewCount != 3000000000 || v.LikeCount != 20000000 {
		t.Errorf("counts = %d/%d", v.ViewCount, v.LikeCount)
	}
	if len(v.Tags) != 3 || v.Tags[0] != "Adele" {
		t.Errorf("tags = %v", v.Tags)
	}

	// Unparsable duration decodes to 0; absent stats become 0.
	v2 := videos[1]
	if v2.DurationSeconds != 0 || v2.ViewCount != 0 || v2.LikeCount != 0 {
		t.Errorf("video 1 = %+v, want zeroed numerics", v2)
	}
}

const sampleSearchPage = `{
	"items": [
		{
			"id": {"videoId": "sr1"},
			"snippet": {
				"title": "Daft Punk - Get Lucky (Official Audio)",
				"channelTitle": "DaftPunkVEVO",
				"description": "Get Lucky from Random Access Memories",
				"thumbnails": {"medium": {"url": "https://i.ytimg.com/sr1.jpg"}}
			}
		},
		{
			"id": {},
			"snippet": {"title": "channel result, not a video"}
		}
	]
}`

func TestParseSearchResults(t *testing.T) {
	results, err := parseSearchResults([]byte(sampleSearchPage))
	if err != nil {
		t.Fatalf("parseSearchResults error: %v", err)
	}
	// Non-video result is skipped.
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.VideoID != "sr1" {
		t.Errorf("video_id = %q", r.VideoID)
	}
	if r.Artist != "Daft Punk" || r.Song != "Get Lucky" {
		t.Errorf("parsed = %q/%q, want Daft Punk/Get Lucky", r.Artist, r.Song)
	}
	if r.Channel != "DaftPunkVEVO" || r.Thumbnail != "https://i.ytimg.com/sr1.jpg" {
		t.Errorf("result = %+v", r)
	}
}

func TestParsePageErrors(t *testing.T) {
	if _, _, err := parsePlaylistsPage([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid playlists JSON")
	}
	if _, _, err := parsePlaylistItemsPage([]byte(`{`)); err == nil {
		t.Error("expected error for invalid items JSON")
	}
	if _, err := parseVideoDetails([]byte(`[]`)); err == nil {
		t.Error("expected error for wrong-shape videos JSON")
	}
	if _, err := parseSearchResults([]byte(`42`)); err == nil {
		t.Error("expected error for wrong-shape search JSON")
	}

	// Empty pages are valid.
	items, next, err := parsePlaylistItemsPage([]byte(`{"items": []}`))
	if err != nil || len(items) != 0 || next != "" {
		t.Errorf("empty page: items=%v next=%q err=%v", items, next, err)
	}
}

func TestAtoi64(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"123", 123},
		{"3000000000", 3000000000},
		{"nope", 0},
	}
	for _, tt := range tests {
		if got := atoi64(tt.in); got != tt.want {
			t.Errorf("atoi64(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
