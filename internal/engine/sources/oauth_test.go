package sources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestLoadOAuthConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("installed section", func(t *testing.T) {
		path := filepath.Join(dir, "secrets.json")
		data := `{"installed": {"client_id": "id123", "client_secret": "s3cret", "redirect_uris": ["http://localhost"]}}`
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}

		conf, err := loadOAuthConfig(path, "http://127.0.0.1:8484/callback")
		if err != nil {
			t.Fatalf("loadOAuthConfig error: %v", err)
		}
		if conf.ClientID != "id123" || conf.ClientSecret != "s3cret" {
			t.Errorf("config = %q/%q", conf.ClientID, conf.ClientSecret)
		}
		if conf.RedirectURL != "http://127.0.0.1:8484/callback" {
			t.Errorf("redirect = %q", conf.RedirectURL)
		}
		if len(conf.Scopes) != 1 || conf.Scopes[0] != youtubeReadonlyScope {
			t.Errorf("scopes = %v", conf.Scopes)
		}
	})

	t.Run("web section fallback", func(t *testing.T) {
		path := filepath.Join(dir, "web.json")
		data := `{"web": {"client_id": "web-id", "client_secret": "web-secret"}}`
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}

		conf, err := loadOAuthConfig(path, "http://127.0.0.1:8484/callback")
		if err != nil {
			t.Fatalf("loadOAuthConfig error: %v", err)
		}
		if conf.ClientID != "web-id" {
			t.Errorf("client_id = %q", conf.ClientID)
		}
	})

	t.Run("missing file is setup required", func(t *testing.T) {
		_, err := loadOAuthConfig(filepath.Join(dir, "nope.json"), "")
		if !errors.Is(err, ErrSetupRequired) {
			t.Errorf("expected ErrSetupRequired, got %v", err)
		}
	})

	t.Run("empty sections rejected", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := loadOAuthConfig(path, ""); err == nil {
			t.Error("expected error for secrets without installed/web section")
		}
	})
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	}
	if err := saveToken(path, tok); err != nil {
		t.Fatalf("saveToken error: %v", err)
	}

	got, err := loadToken(path)
	if err != nil {
		t.Fatalf("loadToken error: %v", err)
	}
	if got.AccessToken != "access" || got.RefreshToken != "refresh" {
		t.Errorf("token = %+v", got)
	}
	if !got.Valid() {
		t.Error("expected loaded token to be valid")
	}
}

func TestSavingTokenSourcePersistsRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	fresh := &oauth2.Token{AccessToken: "new", Expiry: time.Now().Add(time.Hour)}
	ts := &savingTokenSource{
		src:  oauth2.StaticTokenSource(fresh),
		path: path,
		last: "old",
	}

	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("Token error: %v", err)
	}
	if tok.AccessToken != "new" {
		t.Errorf("access token = %q", tok.AccessToken)
	}

	// The refreshed token should now be on disk.
	saved, err := loadToken(path)
	if err != nil {
		t.Fatalf("loadToken error: %v", err)
	}
	if saved.AccessToken != "new" {
		t.Errorf("saved token = %q, want new", saved.AccessToken)
	}
}
