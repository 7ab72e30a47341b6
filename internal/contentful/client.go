// Package contentful is a minimal client for the Contentful Content
// Delivery API entries endpoint.
package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options configures a Client. Credentials are used verbatim and are not
// validated or refreshed.
type Options struct {
	BaseURL     string
	SpaceID     string
	AccessToken string
	// Include is the link resolution depth sent as the include parameter.
	Include    int
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client fetches entry collections for a single space.
type Client struct {
	baseURL     string
	spaceID     string
	accessToken string
	include     int
	http        *http.Client
	logger      *zap.Logger
}

// NewClient creates a Client. A nil HTTPClient gets a client with the given
// timeout; a nil Logger discards log output.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		spaceID:     opts.SpaceID,
		accessToken: opts.AccessToken,
		include:     opts.Include,
		http:        hc,
		logger:      logger,
	}
}

// EntriesURL builds the collection URL for a content type:
// {base}/spaces/{space}/entries?access_token=..&content_type=..&include=..
func (c *Client) EntriesURL(contentType string) string {
	q := url.Values{}
	q.Set("access_token", c.accessToken)
	q.Set("content_type", contentType)
	q.Set("include", strconv.Itoa(c.include))
	return c.baseURL + "/spaces/" + url.PathEscape(c.spaceID) + "/entries?" + q.Encode()
}

// Fetch issues a single GET for the content type and decodes the body.
// There is no retry; callers decide what a failure means for them.
func (c *Client) Fetch(ctx context.Context, contentType string) (*Response, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.EntriesURL(contentType), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	c.logger.Debug("Fetched entries",
		zap.String("content_type", contentType),
		zap.Int("items", len(out.Items)),
		zap.Int("includes", len(out.Includes.Entry)),
		zap.Duration("elapsed", time.Since(start)))
	return &out, nil
}

// statusError describes a non-success response, using the API's error
// message when the body carries one.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Errorf("HTTP error: %d (%s: %s)", resp.StatusCode, apiErr.Sys.ID, apiErr.Message)
	}
	return fmt.Errorf("HTTP error: %d", resp.StatusCode)
}
