package browser

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"trafficgen/pkg/config"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(config.DefaultConfig.Browser, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestRandomUserAgentFromTable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		ua := RandomUserAgent(rng)
		found := false
		for _, known := range userAgents {
			if ua == known {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("unexpected user agent: %s", ua)
		}
	}
}

func TestRandomUserAgentVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[RandomUserAgent(rng)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected varied agents over 20 draws, got %d distinct", len(seen))
	}
}

func TestClientKeepsOneIdentity(t *testing.T) {
	c := testClient(t)
	if c.UserAgent() == "" {
		t.Fatal("client has no user agent")
	}

	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("User-Agent"))
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(u); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}

	for _, ua := range got {
		if ua != c.UserAgent() {
			t.Errorf("user agent changed mid-session: %s vs %s", ua, c.UserAgent())
		}
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	c := testClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept"), "text/html") {
			t.Errorf("missing browser Accept header: %q", r.Header.Get("Accept"))
		}
		if r.Header.Get("Accept-Language") == "" {
			t.Error("missing Accept-Language header")
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	body, err := c.Fetch(u)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(body, "ok") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	c := testClient(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	if _, err := c.Fetch(u); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetchKeepsCookies(t *testing.T) {
	c := testClient(t)

	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err == nil {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(u); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}
	if !sawCookie {
		t.Error("cookie not replayed on second request")
	}
}
