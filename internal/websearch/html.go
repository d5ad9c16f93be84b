package websearch

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultDuckDuckGoURL and DefaultBingURL are the scraped HTML endpoints.
const (
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com"
	DefaultBingURL       = "https://www.bing.com"
)

const maxResults = 3

var spaces = regexp.MustCompile(`\s+`)

// DuckDuckGo scrapes the DuckDuckGo HTML results page.
type DuckDuckGo struct {
	fetcher
}

// NewDuckDuckGo creates a DuckDuckGo backend.
func NewDuckDuckGo(opts ...Option) *DuckDuckGo {
	return &DuckDuckGo{fetcher: newFetcher(DefaultDuckDuckGoURL, opts...)}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Source() string { return "online" }

func (d *DuckDuckGo) Search(ctx context.Context, query string) (string, error) {
	doc, err := d.document(ctx, fmt.Sprintf("%s/html/?q=%s", d.baseURL, url.QueryEscape(query)))
	if err != nil {
		return "", fmt.Errorf("duckduckgo: %w", err)
	}

	results := doc.Find("div.result__body")
	if results.Length() == 0 {
		return fmt.Sprintf("No DuckDuckGo results found for '%s'.", query), nil
	}
	var out []string
	results.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxResults {
			return false
		}
		title := strings.TrimSpace(s.Find("a.result__a").First().Text())
		snippet := strings.TrimSpace(s.Find("a.result__snippet").First().Text())
		if title == "" || snippet == "" {
			return true
		}
		out = append(out, title+": "+cleanSnippet(snippet))
		return true
	})
	if len(out) == 0 {
		return fmt.Sprintf("No meaningful results found on DuckDuckGo for '%s'.", query), nil
	}
	return strings.Join(out, "\n\n"), nil
}

// Bing scrapes the Bing results page, including the featured answer.
type Bing struct {
	fetcher
}

// NewBing creates a Bing backend.
func NewBing(opts ...Option) *Bing {
	return &Bing{fetcher: newFetcher(DefaultBingURL, opts...)}
}

func (b *Bing) Name() string { return "bing" }

func (b *Bing) Source() string { return "Bing" }

func (b *Bing) Search(ctx context.Context, query string) (string, error) {
	doc, err := b.document(ctx, fmt.Sprintf("%s/search?q=%s", b.baseURL, url.QueryEscape(query)))
	if err != nil {
		return "", fmt.Errorf("bing: %w", err)
	}

	results := doc.Find("li.b_algo")
	if results.Length() == 0 {
		return fmt.Sprintf("No Bing results found for '%s'.", query), nil
	}
	var out []string
	results.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxResults {
			return false
		}
		title := strings.TrimSpace(s.Find("h2").First().Text())
		snippet := strings.TrimSpace(s.Find("div.b_caption p").First().Text())
		if title == "" || snippet == "" {
			return true
		}
		out = append(out, title+": "+cleanSnippet(snippet))
		return true
	})
	if featured := strings.TrimSpace(doc.Find("div.b_expansion_text").First().Text()); featured != "" {
		out = append([]string{"Featured answer: " + featured}, out...)
	}
	if len(out) == 0 {
		return fmt.Sprintf("No meaningful results found on Bing for '%s'.", query), nil
	}
	return strings.Join(out, "\n\n"), nil
}

func (f *fetcher) document(ctx context.Context, endpoint string) (*goquery.Document, error) {
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func cleanSnippet(s string) string {
	s = spaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "...", "")
	return strings.ReplaceAll(s, "…", "")
}
