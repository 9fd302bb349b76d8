package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashlens/hashlens/config"
	"github.com/hashlens/hashlens/models"
)

// mediaFields is the field selection requested for recent media.
const mediaFields = "id,caption,media_type,media_url,permalink,timestamp"

// accountFields is the field selection for the business account info proxy.
const accountFields = "id,username,followers_count,follows_count,media_count"

// Client talks to the Facebook Graph API for hashtag and account lookups.
type Client struct {
	baseURL     string
	businessID  string
	accessToken string
	hc          *http.Client
}

// NewClient creates a Client from configuration. Outbound requests use a
// Chrome TLS fingerprint so the service presents one consistent client
// surface.
func NewClient(cfg config.GraphConfig) *Client {
	return NewClientWith(cfg.BaseURL, cfg.BusinessID, cfg.AccessToken, newHTTPClient(""))
}

// NewClientWith builds a Client against an explicit endpoint and HTTP
// client. Used by tests to point at a local server.
func NewClientWith(baseURL, businessID, accessToken string, hc *http.Client) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		businessID:  businessID,
		accessToken: accessToken,
		hc:          hc,
	}
}

// Media is one recent media item for a hashtag.
type Media struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp"`
}

// SearchHashtag resolves a hashtag name to its graph id. An empty id with a
// nil error means the hashtag does not exist; only transport or upstream
// failures return errors.
func (c *Client) SearchHashtag(ctx context.Context, name string) (string, error) {
	q := url.Values{
		"user_id":      {c.businessID},
		"q":            {name},
		"access_token": {c.accessToken},
	}
	var out struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/ig_hashtag_search", q, &out); err != nil {
		return "", models.NewScrapeError(models.ErrCodeUpstream, "hashtag search failed", err)
	}
	if len(out.Data) == 0 {
		return "", nil
	}
	return out.Data[0].ID, nil
}

// RecentMedia fetches up to limit recent media items for a hashtag id.
func (c *Client) RecentMedia(ctx context.Context, hashtagID string, limit int) ([]Media, error) {
	q := url.Values{
		"user_id":      {c.businessID},
		"fields":       {mediaFields},
		"access_token": {c.accessToken},
		"limit":        {strconv.Itoa(limit)},
	}
	var out struct {
		Data []Media `json:"data"`
	}
	if err := c.getJSON(ctx, "/"+hashtagID+"/recent_media", q, &out); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeUpstream, "recent media lookup failed", err)
	}
	return out.Data, nil
}

// AccountInfo returns the business account info JSON verbatim, for the
// read-only profile proxy endpoint.
func (c *Client) AccountInfo(ctx context.Context) (json.RawMessage, error) {
	q := url.Values{
		"fields":       {accountFields},
		"access_token": {c.accessToken},
	}
	body, err := c.get(ctx, "/"+c.businessID, q)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeUpstream, "account info lookup failed", err)
	}
	return json.RawMessage(body), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("graph: decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("graph: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("graph: read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("graph: HTTP %d for %s: %s", resp.StatusCode, path, snippet(body))
	}
	return body, nil
}

// snippet trims an upstream error body to a loggable size.
func snippet(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
