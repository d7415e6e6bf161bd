package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	ClientSecretsFile    string // OAuth client secrets downloaded from Google Cloud Console
	TokenFile            string // persisted OAuth token (created by the interactive flow)
	OAuthListenAddr      string // local callback listener for the interactive flow
	FetchTimeout         time.Duration
	APIRateLimit         float64 // YouTube Data API requests per second
	APIRateBurst         int
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (music, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
