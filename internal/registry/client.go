package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crateseek/internal/domain"
	"crateseek/internal/eventbus"
)

// DefaultBaseURL is the public crates.io API endpoint.
const DefaultBaseURL = "https://crates.io/api/v1"

// crates.io rejects requests without a identifying User-Agent.
const userAgent = "crateseek (https://github.com/crateseek/crateseek)"

// Options configures a Client.
type Options struct {
	BaseURL string
	PerPage int           // page size for async (interactive) searches
	Timeout time.Duration // per-request timeout
}

// Client performs searches against the crates.io registry. Synchronous
// searches return their results directly; asynchronous searches publish a
// SearchCompletedEvent on the bus instead, exactly one per call.
type Client struct {
	http    *http.Client
	baseURL string
	perPage int
	bus     eventbus.EventBus
}

// NewClient creates a registry client. The bus may be nil when only the
// synchronous path is used.
func NewClient(bus eventbus.EventBus, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		baseURL: opts.BaseURL,
		perPage: opts.PerPage,
		bus:     bus,
	}
}

// searchResponse mirrors the crates.io search envelope.
type searchResponse struct {
	Crates []crateJSON `json:"crates"`
	Meta   struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type crateJSON struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	MaxVersion      string    `json:"max_version"`
	NewestVersion   string    `json:"newest_version"`
	Description     string    `json:"description"`
	Downloads       uint64    `json:"downloads"`
	RecentDownloads uint64    `json:"recent_downloads"`
	ExactMatch      bool      `json:"exact_match"`
	Homepage        string    `json:"homepage"`
	Repository      string    `json:"repository"`
	Documentation   string    `json:"documentation"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (c crateJSON) toDomain() domain.Crate {
	return domain.Crate{
		ID:              c.ID,
		Name:            c.Name,
		MaxVersion:      c.MaxVersion,
		NewestVersion:   c.NewestVersion,
		Description:     c.Description,
		Downloads:       c.Downloads,
		RecentDownloads: c.RecentDownloads,
		ExactMatch:      c.ExactMatch,
		Homepage:        c.Homepage,
		Repository:      c.Repository,
		Documentation:   c.Documentation,
		UpdatedAt:       c.UpdatedAt,
	}
}

// Search performs a synchronous registry search. page is 1-based; perPage is
// the explicit result count for this request. It returns the crates for the
// requested page and the registry's total match count.
func (c *Client) Search(ctx context.Context, query string, page, perPage int, sort domain.SortOrder) ([]domain.Crate, int, error) {
	u, err := url.Parse(c.baseURL + "/crates")
	if err != nil {
		return nil, 0, fmt.Errorf("invalid registry URL: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("sort", sort.QueryParam())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("registry returned %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search response: %w", err)
	}

	crates := make([]domain.Crate, 0, len(body.Crates))
	for _, cr := range body.Crates {
		crates = append(crates, cr.toDomain())
	}
	return crates, body.Meta.Total, nil
}

// SearchAsync dispatches a registry search in the background and returns
// immediately. When the request completes a SearchCompletedEvent carrying
// either the results or the error is published on the bus. In-flight
// searches are never cancelled by later ones; results apply in arrival order.
func (c *Client) SearchAsync(query string, page int, sort domain.SortOrder) {
	c.bus.Publish(domain.SearchRequestedEvent{Query: query, Page: page, Sort: sort})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.http.Timeout)
		defer cancel()

		crates, _, err := c.Search(ctx, query, page, c.perPage, sort)
		c.bus.Publish(domain.SearchCompletedEvent{
			Query:  query,
			Page:   page,
			Sort:   sort,
			Crates: crates,
			Err:    err,
		})
	}()
}
