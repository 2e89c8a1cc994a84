// Package scrape fetches a web page and reduces it to the two text inputs
// the analysis pipeline needs: the whitespace-normalized body text and the
// hook (first heading plus opening paragraph).
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 15 * time.Second

	// Some sites serve bot-unfriendly pages to unknown agents.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Pages shorter than this are cookie walls, error shells, or parked
	// domains; scoring them would be noise.
	minContentChars = 50
)

// boilerplateSelector lists the elements stripped before any text is read.
const boilerplateSelector = "script, style, nav, footer, header, aside, form, meta, img"

// ScrapeError reports a failure to fetch the page at all.
type ScrapeError struct {
	Reason string
	Err    error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ScrapeError) Unwrap() error { return e.Err }

// ExtractError reports a fetched page whose content is unusable.
type ExtractError struct {
	Reason string
}

func (e *ExtractError) Error() string { return e.Reason }

// Content is the extracted text of one page.
type Content struct {
	FullText string
	HookText string
}

// Extractor fetches pages over HTTP and extracts their text.
type Extractor struct {
	client          *http.Client
	maxContentChars int
	log             zerolog.Logger
}

// NewExtractor builds an Extractor. A non-positive timeout falls back to the
// default; maxContentChars caps the full text handed to the model, zero
// disables the cap.
func NewExtractor(timeout time.Duration, maxContentChars int, log zerolog.Logger) *Extractor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Extractor{
		client:          &http.Client{Timeout: timeout},
		maxContentChars: maxContentChars,
		log:             log,
	}
}

// Extract fetches rawURL and returns its text content. URLs without a scheme
// are assumed to be https. Fetch failures come back as *ScrapeError, unusable
// pages as *ExtractError.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (Content, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	e.log.Debug().Str("url", rawURL).Msg("fetching page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Content{}, &ScrapeError{Reason: "Invalid URL", Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return Content{}, &ScrapeError{Reason: "Request failed (Connection or Timeout)", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Content{}, &ScrapeError{
			Reason: fmt.Sprintf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	e.log.Info().Int("status", resp.StatusCode).Str("url", rawURL).Msg("fetched page")

	content, err := extractContent(resp.Body)
	if err != nil {
		return Content{}, err
	}

	if e.maxContentChars > 0 {
		content.FullText = truncateRunes(content.FullText, e.maxContentChars)
	}

	e.log.Debug().
		Int("full_chars", utf8.RuneCountInString(content.FullText)).
		Int("hook_chars", utf8.RuneCountInString(content.HookText)).
		Msg("content extracted")

	return content, nil
}

// extractContent strips boilerplate elements, then reads the body text and
// the hook. The hook is the first h1 and first p remaining in the document,
// which is also why extraction happens after stripping: a nav heading must
// not become the hook.
func extractContent(r io.Reader) (Content, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Content{}, &ExtractError{Reason: "Could not parse the page HTML."}
	}

	doc.Find(boilerplateSelector).Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return Content{}, &ExtractError{Reason: "Could not find main content (body tag)."}
	}

	fullText := normalizeSpace(body.Text())

	h1 := normalizeSpace(doc.Find("h1").First().Text())
	p := normalizeSpace(doc.Find("p").First().Text())
	hookText := strings.TrimSpace(h1 + " " + p)

	if utf8.RuneCountInString(fullText) < minContentChars {
		return Content{}, &ExtractError{Reason: "Extracted content is too brief for analysis."}
	}

	return Content{FullText: fullText, HookText: hookText}, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
