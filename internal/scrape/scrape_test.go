package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
    <title>Landing Page</title>
    <script>console.log("tracking");</script>
    <style>.hero { color: red; }</style>
</head>
<body>
    <nav>Home About Pricing</nav>
    <header>Announcement banner</header>
    <h1>Ship your product faster</h1>
    <p>Our platform removes deployment friction for small teams.</p>
    <p>Second paragraph with additional selling points and details.</p>
    <aside>Newsletter signup</aside>
    <form><input name="email"></form>
    <footer>Copyright notice</footer>
</body>
</html>`

func newTestExtractor() *Extractor {
	return NewExtractor(0, 0, zerolog.Nop())
}

func TestExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "Mozilla/5.0") {
			t.Errorf("Expected browser-like User-Agent, got %q", got)
		}
		_, _ = w.Write([]byte(testPage))
	}))
	defer server.Close()

	content, err := newTestExtractor().Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if content.HookText != "Ship your product faster Our platform removes deployment friction for small teams." {
		t.Errorf("Unexpected hook text: %q", content.HookText)
	}

	for _, boilerplate := range []string{"Home About Pricing", "Announcement banner", "Newsletter signup", "Copyright notice", "tracking", ".hero"} {
		if strings.Contains(content.FullText, boilerplate) {
			t.Errorf("FullText should not contain boilerplate %q", boilerplate)
		}
	}
	for _, want := range []string{"Ship your product faster", "Second paragraph"} {
		if !strings.Contains(content.FullText, want) {
			t.Errorf("FullText should contain %q, got: %q", want, content.FullText)
		}
	}
}

func TestExtract_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestExtractor().Extract(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for HTTP 404")
	}

	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("Expected *ScrapeError, got %T", err)
	}
	if !strings.Contains(err.Error(), "HTTP Error 404") {
		t.Errorf("Expected error to mention HTTP Error 404, got: %v", err)
	}
}

func TestExtract_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestExtractor().Extract(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for refused connection")
	}

	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("Expected *ScrapeError, got %T", err)
	}
}

func TestExtract_TooBrief(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Tiny.</p></body></html>`))
	}))
	defer server.Close()

	_, err := newTestExtractor().Extract(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for near-empty page")
	}

	var extractErr *ExtractError
	if !errors.As(err, &extractErr) {
		t.Fatalf("Expected *ExtractError, got %T", err)
	}
	if !strings.Contains(err.Error(), "too brief") {
		t.Errorf("Expected 'too brief' error, got: %v", err)
	}
}

func TestExtract_SchemeFixup(t *testing.T) {
	// A bare host gets https:// prepended; the resulting host does not
	// resolve, so the failure must be a fetch error, not a URL parse error.
	_, err := newTestExtractor().Extract(context.Background(), "definitely-not-a-real-host.invalid")
	if err == nil {
		t.Fatal("Expected error for unresolvable host")
	}
	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("Expected *ScrapeError, got %T", err)
	}
	if !strings.Contains(scrapeErr.Reason, "Request failed") {
		t.Errorf("Expected request failure after scheme fix-up, got: %v", err)
	}
}

func TestExtract_Truncation(t *testing.T) {
	long := strings.Repeat("word ", 200)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	extractor := NewExtractor(0, 100, zerolog.Nop())
	content, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got := len([]rune(content.FullText)); got != 100 {
		t.Errorf("Expected full text truncated to 100 chars, got %d", got)
	}
}

func TestExtractContent_HookWithoutHeading(t *testing.T) {
	html := `<html><body>
<p>Opening paragraph only, long enough to pass the minimum content length check.</p>
</body></html>`

	content, err := extractContent(strings.NewReader(html))
	if err != nil {
		t.Fatalf("extractContent failed: %v", err)
	}
	if content.HookText != "Opening paragraph only, long enough to pass the minimum content length check." {
		t.Errorf("Unexpected hook text: %q", content.HookText)
	}
}

func TestExtractContent_WhitespaceNormalized(t *testing.T) {
	html := `<html><body><h1>Spread
	out    headline</h1><p>Body   text
	with   gaps spread over enough characters to pass the length check.</p></body></html>`

	content, err := extractContent(strings.NewReader(html))
	if err != nil {
		t.Fatalf("extractContent failed: %v", err)
	}
	if strings.Contains(content.FullText, "  ") || strings.Contains(content.FullText, "\n") {
		t.Errorf("FullText should be whitespace-normalized, got: %q", content.FullText)
	}
	if !strings.HasPrefix(content.HookText, "Spread out headline Body text with gaps") {
		t.Errorf("Unexpected hook text: %q", content.HookText)
	}
}
