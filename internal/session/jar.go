package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
	"time"
)

// Jar is a cookie jar that persists to a JSON file, so the session
// cookie from a login survives between CLI invocations. It satisfies
// http.CookieJar.
type Jar struct {
	mu     sync.Mutex
	inner  *cookiejar.Jar
	path   string
	saved  map[string][]savedCookie
	logger *slog.Logger
}

type savedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// OpenJar loads the jar persisted at path, or starts an empty one when
// the file does not exist. Saving is best-effort: a failed write is
// logged and the in-memory jar keeps working.
func OpenJar(path string, logger *slog.Logger) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	j := &Jar{
		inner:  inner,
		path:   path,
		saved:  map[string][]savedCookie{},
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie jar: %w", err)
	}
	if err := json.Unmarshal(data, &j.saved); err != nil {
		// A corrupt jar means signing in again, not failing.
		j.logger.Warn("cookie jar unreadable, starting fresh", "path", path, "error", err)
		j.saved = map[string][]savedCookie{}
		return j, nil
	}

	now := time.Now()
	for rawURL, cookies := range j.saved {
		u, err := url.Parse(rawURL)
		if err != nil {
			delete(j.saved, rawURL)
			continue
		}
		var live []*http.Cookie
		var kept []savedCookie
		for _, c := range cookies {
			if !c.Expires.IsZero() && c.Expires.Before(now) {
				continue
			}
			live = append(live, &http.Cookie{
				Name:    c.Name,
				Value:   c.Value,
				Path:    c.Path,
				Domain:  c.Domain,
				Expires: c.Expires,
			})
			kept = append(kept, c)
		}
		if len(kept) == 0 {
			delete(j.saved, rawURL)
			continue
		}
		j.saved[rawURL] = kept
		j.inner.SetCookies(u, live)
	}
	return j, nil
}

// SetCookies stores the cookies for u and persists the jar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)

	key := (&url.URL{Scheme: u.Scheme, Host: u.Host}).String()
	kept := j.saved[key]
	for _, c := range cookies {
		kept = removeCookie(kept, c.Name)
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			continue
		}
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		kept = append(kept, savedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: expires,
		})
	}
	if len(kept) == 0 {
		delete(j.saved, key)
	} else {
		j.saved[key] = kept
	}

	if err := j.persist(); err != nil {
		j.logger.Warn("failed to persist cookie jar", "path", j.path, "error", err)
	}
}

// Cookies returns the cookies to send with a request to u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Clear drops all cookies and removes the persisted file.
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("reset cookie jar: %w", err)
	}
	j.inner = inner
	j.saved = map[string][]savedCookie{}
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cookie jar: %w", err)
	}
	return nil
}

func (j *Jar) persist() error {
	data, err := json.MarshalIndent(j.saved, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0o600)
}

func removeCookie(cookies []savedCookie, name string) []savedCookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}
