package batch

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/sammelband/sammelband"
	"golang.org/x/time/rate"
)

var _ sammelband.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out page loads per site so a batch of articles from
// one publication does not hammer it. Each domain gets its own token bucket;
// "www." prefixes and letter case are ignored when matching domains.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, with the given burst. A burst below 1 is treated as 1.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Wait blocks until the rate limit allows a request to domain.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := strings.TrimPrefix(strings.ToLower(domain), "www.")

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(d.limit, d.burst)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Domains returns how many distinct domains have been seen.
func (d *DomainLimiter) Domains() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.limiters)
}

// hostname returns the host of rawURL without port, or rawURL itself when
// it cannot be parsed.
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
