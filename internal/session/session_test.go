package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"testertalk/internal/api"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJar_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u, _ := url.Parse("http://tester-talk.example.com")

	jar, err := OpenJar(path, discard())
	if err != nil {
		t.Fatal(err)
	}
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "abc123", Path: "/"}})

	reopened, err := OpenJar(path, discard())
	if err != nil {
		t.Fatal(err)
	}
	cookies := reopened.Cookies(u)
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value != "abc123" {
		t.Errorf("unexpected cookies after reopen: %+v", cookies)
	}
}

func TestJar_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u, _ := url.Parse("http://tester-talk.example.com")

	jar, _ := OpenJar(path, discard())
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "abc123"}})
	if err := jar.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := jar.Cookies(u); len(got) != 0 {
		t.Errorf("cookies after clear: %+v", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("jar file still exists after clear")
	}
}

func TestJar_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	jar, err := OpenJar(path, discard())
	if err != nil {
		t.Fatalf("OpenJar: %v", err)
	}
	u, _ := url.Parse("http://tester-talk.example.com")
	if got := jar.Cookies(u); len(got) != 0 {
		t.Errorf("expected empty jar, got %+v", got)
	}
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	if user, err := store.LoadProfile(); err != nil || user != nil {
		t.Fatalf("LoadProfile on empty store: user=%+v err=%v", user, err)
	}

	want := &api.User{ID: 3, Username: "tester", Role: "admin", IsActive: true}
	if err := store.SaveProfile(want); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	got, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if got.ID != 3 || got.Username != "tester" || !got.IsAdmin() {
		t.Errorf("unexpected profile: %+v", got)
	}

	if err := store.ClearProfile(); err != nil {
		t.Fatalf("ClearProfile: %v", err)
	}
	if user, _ := store.LoadProfile(); user != nil {
		t.Errorf("profile survived clear: %+v", user)
	}
}

func TestGate_CheckSignedIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/me" {
			json.NewEncoder(w).Encode(api.User{ID: 1, Username: "tester", IsActive: true})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := api.New(server.URL)
	store := NewStore(t.TempDir())
	gate := NewGate(client, store, discard())

	user, ok := gate.Check(context.Background())
	if !ok || user.Username != "tester" {
		t.Fatalf("Check: ok=%v user=%+v", ok, user)
	}

	// Profile must be cached for later invocations.
	cached, err := store.LoadProfile()
	if err != nil || cached == nil || cached.Username != "tester" {
		t.Errorf("profile not cached: %+v err=%v", cached, err)
	}

	if _, err := gate.Require(context.Background()); err != nil {
		t.Errorf("Require: %v", err)
	}
}

func TestGate_CheckSignedOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Not authenticated"})
	}))
	defer server.Close()

	client, _ := api.New(server.URL)
	store := NewStore(t.TempDir())
	// Stale cache from a previous session.
	store.SaveProfile(&api.User{ID: 1, Username: "stale"})
	gate := NewGate(client, store, discard())

	user, ok := gate.Check(context.Background())
	if ok || user != nil {
		t.Fatalf("Check should read signed out: ok=%v user=%+v", ok, user)
	}

	// The stale cache must be dropped.
	if cached, _ := store.LoadProfile(); cached != nil {
		t.Errorf("stale profile survived failed check: %+v", cached)
	}

	if _, err := gate.Require(context.Background()); err == nil {
		t.Error("Require should fail when signed out")
	}
}

func TestGate_CheckServerDown(t *testing.T) {
	client, _ := api.New("http://127.0.0.1:1")
	store := NewStore(t.TempDir())
	gate := NewGate(client, store, discard())

	// Check never errors; an unreachable server reads as signed out.
	user, ok := gate.Check(context.Background())
	if ok || user != nil {
		t.Errorf("Check on unreachable server: ok=%v user=%+v", ok, user)
	}
}
