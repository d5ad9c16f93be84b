package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultWikipediaURL is the English Wikipedia host.
const DefaultWikipediaURL = "https://en.wikipedia.org"

const maxSentences = 5

var (
	citation   = regexp.MustCompile(`\[\d+\]`)
	numericPar = regexp.MustCompile(`\([^)]*\d+[^)]*\)`)
)

// Wikipedia looks up the top search hit and returns its lead summary.
type Wikipedia struct {
	fetcher
}

// NewWikipedia creates a Wikipedia backend.
func NewWikipedia(opts ...Option) *Wikipedia {
	return &Wikipedia{fetcher: newFetcher(DefaultWikipediaURL, opts...)}
}

func (w *Wikipedia) Name() string { return "wikipedia" }

func (w *Wikipedia) Source() string { return "Wikipedia" }

type wikiSearch struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiSummary struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

func (w *Wikipedia) Search(ctx context.Context, query string) (string, error) {
	var found wikiSearch
	endpoint := fmt.Sprintf("%s/w/api.php?action=query&list=search&format=json&srlimit=4&srsearch=%s",
		w.baseURL, url.QueryEscape(query))
	if err := w.getJSON(ctx, endpoint, &found); err != nil {
		return "", fmt.Errorf("wikipedia search: %w", err)
	}
	hits := found.Query.Search
	if len(hits) == 0 {
		return fmt.Sprintf("No Wikipedia results found for '%s'.", query), nil
	}

	title := hits[0].Title
	var page wikiSummary
	endpoint = fmt.Sprintf("%s/api/rest_v1/page/summary/%s", w.baseURL, url.PathEscape(strings.ReplaceAll(title, " ", "_")))
	if err := w.getJSON(ctx, endpoint, &page); err != nil {
		return "", fmt.Errorf("wikipedia summary: %w", err)
	}

	if page.Type == "disambiguation" {
		var options []string
		for _, h := range hits[1:] {
			options = append(options, h.Title)
		}
		return fmt.Sprintf("There are multiple matches for '%s' on Wikipedia. Did you mean: %s?", query, strings.Join(options, ", ")), nil
	}
	if strings.TrimSpace(page.Extract) == "" {
		return fmt.Sprintf("No Wikipedia page found for '%s'.", query), nil
	}
	return fmt.Sprintf("%s\n\nSource: Wikipedia article on '%s'.", summarize(page.Extract), title), nil
}

func (w *Wikipedia) getJSON(ctx context.Context, endpoint string, v any) error {
	body, err := w.get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// summarize strips citations and numeric asides and keeps the first few
// sentences.
func summarize(text string) string {
	text = citation.ReplaceAllString(text, "")
	text = numericPar.ReplaceAllString(text, "")
	text = strings.NewReplacer(";", ".", ":", ".").Replace(text)
	text = strings.TrimSpace(spaces.ReplaceAllString(text, " "))

	sentences := strings.Split(text, ". ")
	if len(sentences) > maxSentences {
		text = strings.Join(sentences[:maxSentences], ". ") + "."
	}
	return text
}
