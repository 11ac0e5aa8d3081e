package lobsters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/glabrego/lobsters-cli/internal/mode"
)

const (
	DefaultBaseURL   = "https://lobste.rs"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "lobsters-cli (+https://github.com/glabrego/lobsters-cli)"

	maxErrorBody = 4096
)

// ErrUnexpectedStatus is wrapped by every error caused by a non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected response status")

type Client struct {
	baseURL    string
	http       *resty.Client
	limiter    *rate.Limiter
	downloaded *atomic.Uint64
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	perSecond  float64
	userAgent  string
}

type Option func(*options)

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRateLimit caps outgoing requests per second across every caller of the
// client. A non-positive rate disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(o *options) { o.perSecond = perSecond }
}

func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// NewClient builds a client for baseURL. Response sizes are added to
// downloaded, which may be nil.
func NewClient(baseURL string, downloaded *atomic.Uint64, opts ...Option) *Client {
	o := options{timeout: DefaultTimeout, userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := resty.New()
	if o.httpClient != nil {
		httpClient = resty.NewWithClient(o.httpClient)
	}
	if o.timeout > 0 {
		httpClient.SetTimeout(o.timeout)
	}
	httpClient.
		SetHeader("User-Agent", o.userAgent).
		SetHeader("Accept", "application/json")

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       httpClient,
		downloaded: downloaded,
	}
	if o.perSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(o.perSecond), 1)
	}
	c.http.OnBeforeRequest(c.throttle)
	c.http.OnAfterResponse(c.countBytes)
	return c
}

// ListPosts fetches one page of the listing selected by m.
func (c *Client) ListPosts(ctx context.Context, m mode.Mode) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, m.Path(), fmt.Sprintf("%s page %d", strings.ToLower(m.String()), m.Page), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostDetails fetches the comment thread of the story with the given short id.
func (c *Client) PostDetails(ctx context.Context, shortID string) (PostDetails, error) {
	if strings.TrimSpace(shortID) == "" {
		return PostDetails{}, errors.New("post details: empty short id")
	}
	var details PostDetails
	path := "/s/" + url.PathEscape(shortID) + ".json"
	if err := c.getJSON(ctx, path, "post "+shortID, &details); err != nil {
		return PostDetails{}, err
	}
	if details.ShortID == "" {
		details.ShortID = shortID
	}
	return details, nil
}

func (c *Client) getJSON(ctx context.Context, path, resource string, out any) error {
	resp, err := c.http.R().SetContext(ctx).Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", resource, err)
	}
	if !resp.IsSuccess() {
		body := resp.Body()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return fmt.Errorf("%s: %w %d: %s", resource, ErrUnexpectedStatus, resp.StatusCode(), strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) throttle(_ *resty.Client, req *resty.Request) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(req.Context())
}

func (c *Client) countBytes(_ *resty.Client, resp *resty.Response) error {
	if c.downloaded == nil {
		return nil
	}
	n := resp.Size()
	if raw := resp.RawResponse; raw != nil && raw.ContentLength > 0 {
		n = raw.ContentLength
	}
	if n > 0 {
		c.downloaded.Add(uint64(n))
	}
	return nil
}
