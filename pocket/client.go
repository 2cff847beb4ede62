// Package pocket is a client for the Pocket read-it-later API.
package pocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sammelband/sammelband"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Pocket API origin.
const DefaultBaseURL = "https://getpocket.com"

// DefaultTimeout bounds each API call.
const DefaultTimeout = 10 * time.Second

// DefaultMaxWait is how long a call may wait for the rate limit before it
// is rejected.
const DefaultMaxWait = 5 * time.Second

// Pocket allows 10,000 calls per hour per consumer key and 320 calls per
// hour per user.
var (
	defaultAppLimit  = rate.Every(time.Hour / 10000)
	defaultUserLimit = rate.Every(time.Hour / 320)
)

// Ensure Client implements sammelband.ReadingList at compile time.
var _ sammelband.ReadingList = (*Client)(nil)

// Client implements sammelband.ReadingList against the Pocket v3 API.
type Client struct {
	consumerKey string
	redirectURI string
	baseURL     string
	client      *http.Client
	maxWait     time.Duration

	// limiter spends the consumer key's budget; users spend per-user
	// budgets keyed by access token.
	limiter   *rate.Limiter
	mu        sync.Mutex
	users     map[string]*rate.Limiter
	userLimit rate.Limit
	userBurst int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API origin.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit sets how many API calls the consumer key may make per
// second, with the given burst.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// WithUserRateLimit sets how many API calls each user, identified by access
// token, may make per second, with the given burst.
func WithUserRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.userLimit = r
		c.userBurst = burst
	}
}

// WithMaxWait sets how long a call may wait for the rate limit.
func WithMaxWait(d time.Duration) Option {
	return func(c *Client) {
		c.maxWait = d
	}
}

// NewClient creates a Client. redirectURI is where Pocket sends the user
// after they approve a request token.
func NewClient(consumerKey, redirectURI string, opts ...Option) (*Client, error) {
	if consumerKey == "" {
		return nil, sammelband.Errorf(sammelband.EINVALID, "pocket consumer key required")
	}
	c := &Client{
		consumerKey: consumerKey,
		redirectURI: redirectURI,
		baseURL:     DefaultBaseURL,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxWait:     DefaultMaxWait,
		limiter:     rate.NewLimiter(defaultAppLimit, 100),
		users:       make(map[string]*rate.Limiter),
		userLimit:   defaultUserLimit,
		userBurst:   10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RequestToken obtains a request token to start authorization.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	var resp struct {
		Code string `json:"code"`
	}
	if err := c.post(ctx, "/v3/oauth/request", "", map[string]string{
		"consumer_key": c.consumerKey,
		"redirect_uri": c.redirectURI,
	}, &resp); err != nil {
		return "", err
	}
	if resp.Code == "" {
		return "", fmt.Errorf("pocket returned no request token")
	}
	return resp.Code, nil
}

// AccessToken exchanges an approved request token for an access token.
func (c *Client) AccessToken(ctx context.Context, requestToken string) (string, error) {
	if requestToken == "" {
		return "", sammelband.Errorf(sammelband.EINVALID, "pocket request token required")
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.post(ctx, "/v3/oauth/authorize", "", map[string]string{
		"consumer_key": c.consumerKey,
		"code":         requestToken,
	}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("pocket returned no access token")
	}
	return resp.AccessToken, nil
}

// List returns the user's unread items as Pocket reports them.
func (c *Client) List(ctx context.Context, accessToken string) (json.RawMessage, error) {
	if accessToken == "" {
		return nil, sammelband.Errorf(sammelband.EUNAUTHORIZED, "not logged in to pocket")
	}
	var resp json.RawMessage
	if err := c.post(ctx, "/v3/get", accessToken, map[string]string{
		"consumer_key": c.consumerKey,
		"access_token": accessToken,
		"state":        "unread",
		"detailType":   "simple",
	}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AuthorizeURL returns the page where the user approves requestToken.
func (c *Client) AuthorizeURL(requestToken string) string {
	q := url.Values{}
	q.Set("request_token", requestToken)
	q.Set("redirect_uri", c.redirectURI)
	return c.baseURL + "/auth/authorize?" + q.Encode()
}

// wait blocks until both the consumer key and the user identified by
// accessToken may make a call. A call that would wait longer than maxWait
// fails at once with EINVALID.
func (c *Client) wait(ctx context.Context, accessToken string) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	limiters := []*rate.Limiter{c.limiter}
	if accessToken != "" {
		limiters = append(limiters, c.userLimiter(accessToken))
	}
	for _, l := range limiters {
		if err := l.Wait(waitCtx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return sammelband.Errorf(sammelband.EINVALID, "pocket rate limit reached, try again later")
		}
	}
	return nil
}

func (c *Client) userLimiter(accessToken string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.users[accessToken]
	if !ok {
		l = rate.NewLimiter(c.userLimit, c.userBurst)
		c.users[accessToken] = l
	}
	return l
}

func (c *Client) post(ctx context.Context, path, accessToken string, body any, out any) error {
	if err := c.wait(ctx, accessToken); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := resp.Header.Get("X-Error")
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return sammelband.Errorf(sammelband.EUNAUTHORIZED, "pocket: %s", msg)
		case http.StatusBadRequest:
			return sammelband.Errorf(sammelband.EINVALID, "pocket: %s", msg)
		default:
			return fmt.Errorf("pocket HTTP %d: %s", resp.StatusCode, msg)
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding pocket response: %w", err)
	}
	return nil
}
