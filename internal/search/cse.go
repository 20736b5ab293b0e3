// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fetches result pages from the Google Custom Search JSON API
// and maps its failures onto the harvest fetch errors.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/profile-hunter/internal/harvest"
	"github.com/pdiddy/profile-hunter/pkg/types"
)

// cseAPIBase is the Custom Search JSON API endpoint. Declared as a var so
// tests can substitute an httptest server.
var cseAPIBase = "https://www.googleapis.com/customsearch/v1"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "profile-hunter/0.1"
	defaultRate      = 1.0

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// GoogleBackend queries a Programmable Search Engine. It implements
// harvest.PageFetcher and is safe for concurrent use; all callers share
// Limiter.
type GoogleBackend struct {
	Client   *http.Client
	APIKey   string
	EngineID string

	// SiteSearch, when set, asks the engine to include only results under
	// this site prefix.
	SiteSearch string
	UserAgent  string

	// Limiter paces requests. Nil disables pacing.
	Limiter *rate.Limiter
}

// NewGoogleBackend builds a backend from cfg. It fails with
// harvest.ErrInvalidInput when the key or engine id is missing.
func NewGoogleBackend(cfg types.SearchConfig) (*GoogleBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: Google API key not configured (set google-api-key in .secrets or --api-key)", harvest.ErrInvalidInput)
	}
	if strings.TrimSpace(cfg.EngineID) == "" {
		return nil, fmt.Errorf("%w: search engine id not configured (set google-cse-id in .secrets or --cse-id)", harvest.ErrInvalidInput)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}

	return &GoogleBackend{
		Client:     &http.Client{Timeout: timeout},
		APIKey:     cfg.APIKey,
		EngineID:   cfg.EngineID,
		SiteSearch: cfg.SiteSearch,
		UserAgent:  ua,
		Limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Fetch returns the result page of query that begins at the 1-based index
// start.
func (b *GoogleBackend) Fetch(ctx context.Context, query string, start int) (types.Page, error) {
	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return types.Page{}, ctx.Err()
			}
			return types.Page{}, fmt.Errorf("%w: waiting for rate limiter: %v", harvest.ErrTransport, err)
		}
	}

	params := url.Values{
		"key":   {b.APIKey},
		"cx":    {b.EngineID},
		"q":     {query},
		"num":   {strconv.Itoa(harvest.PageSize)},
		"start": {strconv.Itoa(start)},
	}
	if b.SiteSearch != "" {
		params.Set("siteSearch", b.SiteSearch)
		params.Set("siteSearchFilter", "i")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cseAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return types.Page{}, fmt.Errorf("%w: creating request: %v", harvest.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return types.Page{}, ctx.Err()
		}
		return types.Page{}, requestError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return types.Page{}, statusError(resp.StatusCode, body)
	}

	var sr cseResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		if ctx.Err() != nil {
			return types.Page{}, ctx.Err()
		}
		return types.Page{}, fmt.Errorf("%w: parsing search response: %v", harvest.ErrTransport, err)
	}

	page := types.Page{
		Items:         make([]types.RawResult, 0, len(sr.Items)),
		TotalEstimate: parseTotal(sr.SearchInformation.TotalResults),
	}
	for _, it := range sr.Items {
		page.Items = append(page.Items, types.RawResult{
			Title:   it.Title,
			Link:    it.Link,
			Snippet: it.Snippet,
		})
	}
	return page, nil
}

// parseTotal reads the engine's result estimate, which the API encodes as
// a decimal string. A missing or unreadable estimate is reported as the
// per-query ceiling so pagination falls back to the short-page rule.
func parseTotal(s string) int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return harvest.MaxResultsPerQuery
	}
	if n > int64(harvest.MaxResultsPerQuery) {
		return harvest.MaxResultsPerQuery
	}
	return int(n)
}

// requestError classifies a failed round trip. The request URL is left out
// of the message because it carries the API key.
func requestError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: request timed out: %v", harvest.ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", harvest.ErrTransport, err)
}

// statusError maps a non-200 response onto a fetch error.
func statusError(code int, body []byte) error {
	var er cseErrorResponse
	_ = json.Unmarshal(body, &er)
	reasons := er.reasons()

	msg := fmt.Sprintf("HTTP %d", code)
	if len(reasons) > 0 {
		msg += " " + strings.Join(reasons, ",")
	}
	if er.Error.Message != "" {
		msg += ": " + er.Error.Message
	}

	has := func(want ...string) bool {
		for _, r := range reasons {
			for _, w := range want {
				if strings.EqualFold(r, w) {
					return true
				}
			}
		}
		return false
	}

	switch {
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", msg, harvest.ErrRateLimited)
	case code == http.StatusForbidden && has("rateLimitExceeded", "userRateLimitExceeded"):
		return fmt.Errorf("%s: %w", msg, harvest.ErrRateLimited)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, harvest.ErrAuth)
	case code == http.StatusBadRequest && has("keyInvalid", "API_KEY_INVALID"):
		return fmt.Errorf("%s: %w", msg, harvest.ErrAuth)
	case code >= 500:
		return fmt.Errorf("%s: %w", msg, harvest.ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", msg, harvest.ErrTransport)
	}
}

// Custom Search JSON API structures.
type cseResponse struct {
	Items             []cseItem `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

type cseItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type cseErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// reasons returns the machine-readable failure reasons from both the
// legacy errors list and the newer details list.
func (e cseErrorResponse) reasons() []string {
	var out []string
	for _, x := range e.Error.Errors {
		if x.Reason != "" {
			out = append(out, x.Reason)
		}
	}
	for _, x := range e.Error.Details {
		if x.Reason != "" {
			out = append(out, x.Reason)
		}
	}
	return out
}
