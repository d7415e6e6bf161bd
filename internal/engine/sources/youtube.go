package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_music/internal/engine"
	"github.com/anatolykoptev/go_music/internal/engine/music"
)

// YouTube Data API v3 client. Explicitly constructed and passed to the tool
// layer; the authorized HTTP client is established lazily on first use so
// the server starts without blocking on the OAuth flow.

const (
	ytAPIBase = "https://www.googleapis.com/youtube/v3"

	ytPageSize       = 50 // API maximum per page / per batch
	ytSearchMax      = 25 // API cap for search requests
	musicCategoryID  = "10"
	defaultPlaylists = 50
	defaultItems     = 200
	defaultSearch    = 10
)

// Client talks to the YouTube Data API v3 on behalf of one OAuth identity.
type Client struct {
	limiter *rate.Limiter

	mu   sync.Mutex
	http *http.Client // nil until first authorized call
}

// NewClient builds a client using engine configuration for rate limits.
// No network or auth happens here.
func NewClient() *Client {
	qps := engine.Cfg.APIRateLimit
	if qps <= 0 {
		qps = 8
	}
	burst := engine.Cfg.APIRateBurst
	if burst <= 0 {
		burst = 4
	}
	return &Client{limiter: rate.NewLimiter(rate.Limit(qps), burst)}
}

// httpClient returns the authorized HTTP client, running the OAuth flow on
// first use.
func (c *Client) httpClient(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.http != nil {
		return c.http, nil
	}
	hc, err := authorize(ctx)
	if err != nil {
		return nil, err
	}
	c.http = hc
	return hc, nil
}

// apiGet performs one rate-limited, retried GET against the Data API and
// returns the response body.
func (c *Client) apiGet(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	hc, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if t := engine.Cfg.FetchTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	apiURL := ytAPIBase + endpoint + "?" + params.Encode()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		req.Header.Set("Accept", "application/json")
		return hc.Do(req)
	})
	if err != nil {
		engine.IncrAPIErrors()
		return nil, fmt.Errorf("youtube API %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read youtube API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		engine.IncrAPIErrors()
		return nil, fmt.Errorf("youtube API %s returned %d: %s", endpoint, resp.StatusCode, engine.Truncate(string(body), 512))
	}
	return body, nil
}

// --- Data API response types ---

type ytThumbnails struct {
	Medium struct {
		URL string `json:"url"`
	} `json:"medium"`
}

type ytPlaylistsPage struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string       `json:"title"`
			Description string       `json:"description"`
			Thumbnails  ytThumbnails `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			ItemCount int64 `json:"itemCount"`
		} `json:"contentDetails"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type ytPlaylistItemsPage struct {
	Items []struct {
		Snippet struct {
			Title                  string `json:"title"`
			VideoOwnerChannelTitle string `json:"videoOwnerChannelTitle"`
			Position               int64  `json:"position"`
			ResourceID             struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type ytVideosPage struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string   `json:"title"`
			ChannelTitle string   `json:"channelTitle"`
			CategoryID   string   `json:"categoryId"`
			Tags         []string `json:"tags"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		// statistics values are decimal strings in the API
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type ytSearchPage struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string       `json:"title"`
			ChannelTitle string       `json:"channelTitle"`
			Description  string       `json:"description"`
			Thumbnails   ytThumbnails `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// --- Page parsing (pure, fixture-testable) ---

func parsePlaylistsPage(body []byte) ([]engine.Playlist, string, error) {
	var page ytPlaylistsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("playlists page parse error: %w", err)
	}
	playlists := make([]engine.Playlist, 0, len(page.Items))
	for _, it := range page.Items {
		if it.ID == "" {
			continue
		}
		playlists = append(playlists, engine.Playlist{
			ID:          it.ID,
			Title:       it.Snippet.Title,
			Description: it.Snippet.Description,
			ItemCount:   it.ContentDetails.ItemCount,
			Thumbnail:   it.Snippet.Thumbnails.Medium.URL,
		})
	}
	return playlists, page.NextPageToken, nil
}

func parsePlaylistItemsPage(body []byte) ([]music.RawTrackItem, string, error) {
	var page ytPlaylistItemsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("playlist items page parse error: %w", err)
	}
	items := make([]music.RawTrackItem, 0, len(page.Items))
	for _, it := range page.Items {
		if it.Snippet.ResourceID.VideoID == "" {
			continue
		}
		items = append(items, music.RawTrackItem{
			VideoID:  it.Snippet.ResourceID.VideoID,
			Title:    it.Snippet.Title,
			Channel:  it.Snippet.VideoOwnerChannelTitle,
			Position: it.Snippet.Position,
		})
	}
	return items, page.NextPageToken, nil
}

func parseVideoDetails(body []byte) ([]music.RawVideoDetail, error) {
	var page ytVideosPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("videos page parse error: %w", err)
	}
	videos := make([]music.RawVideoDetail, 0, len(page.Items))
	for _, it := range page.Items {
		if it.ID == "" {
			continue
		}
		videos = append(videos, music.RawVideoDetail{
			VideoID:         it.ID,
			Title:           it.Snippet.Title,
			Channel:         it.Snippet.ChannelTitle,
			Duration:        it.ContentDetails.Duration,
			DurationSeconds: music.DecodeDuration(it.ContentDetails.Duration),
			ViewCount:       atoi64(it.Statistics.ViewCount),
			LikeCount:       atoi64(it.Statistics.LikeCount),
			CategoryID:      it.Snippet.CategoryID,
			Tags:            it.Snippet.Tags,
		})
	}
	return videos, nil
}

func parseSearchResults(body []byte) ([]engine.SearchResult, error) {
	var page ytSearchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("search page parse error: %w", err)
	}
	results := make([]engine.SearchResult, 0, len(page.Items))
	for _, it := range page.Items {
		if it.ID.VideoID == "" {
			continue
		}
		artist, song := music.ParseTitle(it.Snippet.Title)
		results = append(results, engine.SearchResult{
			VideoID:     it.ID.VideoID,
			Title:       it.Snippet.Title,
			Artist:      artist,
			Song:        song,
			Channel:     it.Snippet.ChannelTitle,
			Description: engine.TruncateRunes(it.Snippet.Description, 200, "…"),
			Thumbnail:   it.Snippet.Thumbnails.Medium.URL,
		})
	}
	return results, nil
}

// atoi64 parses the API's decimal-string counters; absent values become 0.
func atoi64(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// --- Operations ---

// MyPlaylists lists the authenticated user's playlists, paginated up to max.
func (c *Client) MyPlaylists(ctx context.Context, max int) ([]engine.Playlist, error) {
	if max <= 0 {
		max = defaultPlaylists
	}

	var playlists []engine.Playlist
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("part", "snippet,contentDetails")
		params.Set("mine", "true")
		params.Set("maxResults", strconv.Itoa(pageSize(max)))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.apiGet(ctx, "/playlists", params)
		if err != nil {
			return nil, err
		}
		page, next, err := parsePlaylistsPage(body)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, page...)

		pageToken = next
		if pageToken == "" || len(playlists) >= max {
			break
		}
	}

	if len(playlists) > max {
		playlists = playlists[:max]
	}
	slog.Debug("youtube: playlists fetched", slog.Int("count", len(playlists)))
	return playlists, nil
}

// PlaylistItems lists a playlist's raw items, paginated up to max.
// Parsing into artist/song happens in the music package, not here.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string, max int) ([]music.RawTrackItem, error) {
	if max <= 0 {
		max = defaultItems
	}

	var items []music.RawTrackItem
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("part", "snippet,contentDetails")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(pageSize(max)))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.apiGet(ctx, "/playlistItems", params)
		if err != nil {
			return nil, err
		}
		page, next, err := parsePlaylistItemsPage(body)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)

		pageToken = next
		if pageToken == "" || len(items) >= max {
			break
		}
	}

	if len(items) > max {
		items = items[:max]
	}
	slog.Debug("youtube: playlist items fetched",
		slog.String("playlist", playlistID), slog.Int("count", len(items)))
	return items, nil
}

// VideoDetails fetches per-video records for up to 50 IDs in one batch call.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) ([]music.RawVideoDetail, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > ytPageSize {
		videoIDs = videoIDs[:ytPageSize]
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(videoIDs, ","))

	body, err := c.apiGet(ctx, "/videos", params)
	if err != nil {
		return nil, err
	}
	return parseVideoDetails(body)
}

// SearchMusic searches music-category videos.
func (c *Client) SearchMusic(ctx context.Context, query string, max int) ([]engine.SearchResult, error) {
	if max <= 0 {
		max = defaultSearch
	}
	if max > ytSearchMax {
		max = ytSearchMax
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("videoCategoryId", musicCategoryID)
	params.Set("maxResults", strconv.Itoa(max))

	body, err := c.apiGet(ctx, "/search", params)
	if err != nil {
		return nil, err
	}
	results, err := parseSearchResults(body)
	if err != nil {
		return nil, err
	}
	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

func pageSize(remaining int) int {
	if remaining < ytPageSize {
		return remaining
	}
	return ytPageSize
}
