// Package invidious implements provider.Searcher against the HTML search
// page of an Invidious instance.
package invidious

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/odvcencio/stax/pkg/errors"
	"github.com/odvcencio/stax/pkg/provider"
)

// Client scrapes search results from an Invidious-compatible instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxResults int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxResults caps the number of parsed results.
func WithMaxResults(n int) Option {
	return func(c *Client) { c.maxResults = n }
}

// New creates a client for the given instance base URL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxResults: 15,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches the search page for query and parses the video cards.
func (c *Client) Search(ctx context.Context, query string) ([]provider.Video, error) {
	u := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeProviderSearch, "build search request", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.CodeProviderSearch, "search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.CodeProviderSearch, "search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.CodeProviderSearch, "parse search page", err)
	}

	return c.parseResults(doc), nil
}

func (c *Client) parseResults(doc *goquery.Document) []provider.Video {
	var videos []provider.Video
	doc.Find("div.pure-u-1 div.h-box").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		link := card.Find("a[href^='/watch']").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		id := videoID(href)
		if id == "" {
			return true
		}

		title := strings.TrimSpace(link.Find("p[dir='auto']").First().Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		channel := strings.TrimSpace(card.Find("p.channel-name").First().Text())

		videos = append(videos, provider.Video{
			ID:      id,
			Title:   title,
			Channel: channel,
		})
		return c.maxResults <= 0 || len(videos) < c.maxResults
	})
	return videos
}

func videoID(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}
