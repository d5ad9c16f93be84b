package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"friday/internal/model"
)

// DefaultMFAPIURL is the public Indian mutual fund NAV API.
const DefaultMFAPIURL = "https://api.mfapi.in"

// maxFundMatches caps fund search results.
const maxFundMatches = 5

// MFAPIFetcher implements FundSource using the mfapi.in REST API.
type MFAPIFetcher struct {
	httpSource
}

// NewMFAPIFetcher creates a new fetcher with optional proxy support.
func NewMFAPIFetcher(proxyURL string, opts ...Option) *MFAPIFetcher {
	return &MFAPIFetcher{httpSource: newHTTPSource(DefaultMFAPIURL, proxyURL, opts...)}
}

func (f *MFAPIFetcher) Name() string { return "mfapi" }

// mfScheme is the expected JSON shape of the MFAPI scheme endpoint.
type mfScheme struct {
	Meta struct {
		FundHouse  string      `json:"fund_house"`
		SchemeType string      `json:"scheme_type"`
		SchemeCode json.Number `json:"scheme_code"`
		SchemeName string      `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

type mfListing struct {
	SchemeCode json.Number `json:"schemeCode"`
	SchemeName string      `json:"schemeName"`
}

// FetchFund loads the full NAV history of a scheme. MFAPI lists the newest
// entry first with dd-mm-yyyy dates and string NAVs.
func (f *MFAPIFetcher) FetchFund(ctx context.Context, code model.FundCode) (*model.FundHistory, error) {
	endpoint := fmt.Sprintf("%s/mf/%s", f.baseURL, url.PathEscape(string(code)))

	var scheme mfScheme
	if err := f.getJSON(ctx, endpoint, &scheme); err != nil {
		return nil, fmt.Errorf("mfapi fund %s: %w", code, err)
	}

	points := make([]model.Point, 0, len(scheme.Data))
	for _, d := range scheme.Data {
		t, err := time.Parse("02-01-2006", d.Date)
		if err != nil {
			continue
		}
		nav, err := strconv.ParseFloat(strings.TrimSpace(d.NAV), 64)
		if err != nil {
			continue
		}
		points = append(points, model.Point{Time: t, Value: nav})
	}

	return &model.FundHistory{
		Meta: model.FundMeta{
			Code:       code,
			SchemeName: orDefault(scheme.Meta.SchemeName, "Unknown Fund"),
			FundHouse:  orDefault(scheme.Meta.FundHouse, "Unknown AMC"),
			SchemeType: orDefault(scheme.Meta.SchemeType, "Unknown Type"),
		},
		NAV:       CleanSeries(model.Series{Name: string(code), Points: points}),
		FetchedAt: time.Now(),
	}, nil
}

// SearchFunds filters the full scheme list by case-insensitive substring
// and returns the first few matches.
func (f *MFAPIFetcher) SearchFunds(ctx context.Context, query string) ([]model.FundCandidate, error) {
	var all []mfListing
	if err := f.getJSON(ctx, f.baseURL+"/mf", &all); err != nil {
		return nil, fmt.Errorf("mfapi search %q: %w", query, err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.FundCandidate
	for _, s := range all {
		if !strings.Contains(strings.ToLower(s.SchemeName), q) {
			continue
		}
		out = append(out, model.FundCandidate{Code: model.FundCode(s.SchemeCode.String()), Name: s.SchemeName})
		if len(out) == maxFundMatches {
			break
		}
	}
	return out, nil
}
