package sources

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/anatolykoptev/go_music/internal/engine"
)

// OAuth installed-app flow against the YouTube Data API: client secrets from
// Google Cloud Console, token persisted to disk and refreshed silently.

const youtubeReadonlyScope = "https://www.googleapis.com/auth/youtube.readonly"

// ErrSetupRequired signals missing OAuth client secrets. The tool layer maps
// it to setup instructions instead of a bare error string.
var ErrSetupRequired = errors.New("oauth client secrets not found")

// clientSecretsFile mirrors the Google Cloud Console credentials download,
// which nests the actual secrets under "installed" (desktop) or "web".
type clientSecretsFile struct {
	Installed *clientSecrets `json:"installed"`
	Web       *clientSecrets `json:"web"`
}

type clientSecrets struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris"`
}

// loadOAuthConfig reads the client secrets file and builds the oauth2 config.
// A missing file yields ErrSetupRequired.
func loadOAuthConfig(path, redirectURL string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: download OAuth credentials from Google Cloud Console and save as %q", ErrSetupRequired, path)
		}
		return nil, fmt.Errorf("read client secrets: %w", err)
	}

	var f clientSecretsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	secrets := f.Installed
	if secrets == nil {
		secrets = f.Web
	}
	if secrets == nil || secrets.ClientID == "" {
		return nil, fmt.Errorf("client secrets %q has no installed/web section", path)
	}

	return &oauth2.Config{
		ClientID:     secrets.ClientID,
		ClientSecret: secrets.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{youtubeReadonlyScope},
		Endpoint:     google.Endpoint,
	}, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// savingTokenSource persists refreshed tokens so restarts skip the
// interactive flow.
type savingTokenSource struct {
	src  oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string // access token already on disk
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := saveToken(s.path, tok); err != nil {
			slog.Warn("oauth: token save failed", slog.Any("error", err))
		} else {
			s.last = tok.AccessToken
		}
	}
	return tok, nil
}

// authorize produces an authenticated HTTP client: persisted token when one
// exists (refreshable tokens are refreshed transparently), interactive
// local-callback flow otherwise.
func authorize(ctx context.Context) (*http.Client, error) {
	listenAddr := engine.Cfg.OAuthListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8484"
	}
	redirectURL := "http://" + listenAddr + "/callback"

	conf, err := loadOAuthConfig(engine.Cfg.ClientSecretsFile, redirectURL)
	if err != nil {
		return nil, err
	}

	// Base transport for both the token endpoint and API calls.
	if engine.Cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, engine.Cfg.HTTPClient)
	}

	tok, err := loadToken(engine.Cfg.TokenFile)
	if err != nil || (!tok.Valid() && tok.RefreshToken == "") {
		tok, err = interactiveFlow(ctx, conf, listenAddr)
		if err != nil {
			return nil, err
		}
		if err := saveToken(engine.Cfg.TokenFile, tok); err != nil {
			slog.Warn("oauth: token save failed", slog.Any("error", err))
		}
	}

	ts := &savingTokenSource{
		src:  conf.TokenSource(ctx, tok),
		path: engine.Cfg.TokenFile,
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, ts), nil
}

// interactiveFlow runs the one-time browser consent flow with a local
// callback listener and exchanges the authorization code for a token.
func interactiveFlow(ctx context.Context, conf *oauth2.Config, listenAddr string) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("oauth callback listener: %w", err)
	}
	defer ln.Close()

	type callbackResult struct {
		code string
		err  error
	}
	ch := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			ch <- callbackResult{err: errors.New("oauth state mismatch")}
			return
		}
		code := r.FormValue("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			ch <- callbackResult{err: errors.New("oauth callback without code")}
			return
		}
		fmt.Fprint(w, "Authorization complete. You can close this window.")
		ch <- callbackResult{code: code}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(ln)
	defer srv.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	slog.Info("oauth: authorization required, open this URL in a browser",
		slog.String("url", authURL))

	var res callbackResult
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := conf.Exchange(ctx, res.code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange: %w", err)
	}
	return tok, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("oauth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
