package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sammelband/sammelband"
	"golang.org/x/time/rate"
)

// SessionCookie is the name of the cookie carrying the session ID.
const SessionCookie = "sid"

type contextKey int

const sessionContextKey contextKey = iota + 1

// SessionFromContext returns the session attached by the session middleware.
func SessionFromContext(ctx context.Context) *sammelband.Session {
	session, _ := ctx.Value(sessionContextKey).(*sammelband.Session)
	return session
}

// logRequests logs one line per request once it has been served.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		defer func() {
			s.logger().Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// cors allows credentialed requests from the client origin and from
// localhost during development.
func (s *Server) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if s.ClientURL != "" && origin == s.ClientURL {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			host := u.Hostname()
			return host == "localhost" || host == "127.0.0.1"
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// rateLimit rejects clients exceeding RequestsPerMinute with 429.
func (s *Server) rateLimit() func(http.Handler) http.Handler {
	perMinute := s.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = DefaultRequestsPerMinute
	}
	limiter := newClientLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "60")
				writeJSON(w, http.StatusTooManyRequests, &ErrorResponse{Error: "Too many requests, please try again later."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientLimiter holds one token bucket per client address.
type clientLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	clients  map[string]*clientEntry
	lastTidy time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(limit rate.Limit, burst int) *clientLimiter {
	return &clientLimiter{limit: limit, burst: burst, clients: make(map[string]*clientEntry)}
}

func (l *clientLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastTidy) > 10*time.Minute {
		for k, e := range l.clients {
			if now.Sub(e.lastSeen) > 10*time.Minute {
				delete(l.clients, k)
			}
		}
		l.lastTidy = now
	}

	e, ok := l.clients[client]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// loadSession attaches the caller's session to the request context,
// creating one when the cookie is missing or stale, and saves it after the
// handler returns.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var session *sammelband.Session
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			session, err = s.Sessions.FindSession(r.Context(), c.Value)
			if err != nil && sammelband.ErrorCode(err) != sammelband.ENOTFOUND {
				s.Error(w, r, err)
				return
			}
		}
		if session == nil {
			session = &sammelband.Session{ID: uuid.New().String()}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    session.ID,
			Path:     "/",
			MaxAge:   int((30 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			Secure:   s.secureCookies(),
			SameSite: http.SameSiteLaxMode,
		})

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey, session)))

		// The session outlives a canceled request.
		if err := s.Sessions.SaveSession(context.WithoutCancel(r.Context()), session); err != nil {
			s.logger().Error("save session", "session", session.ID, "err", err)
		}
	})
}

// decodeJSON reads a JSON body of at most MaxBodyBytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return sammelband.Errorf(sammelband.EINVALID, "request body too large")
		}
		if sammelband.ErrorCode(err) == sammelband.EINVALID {
			return err
		}
		return sammelband.Errorf(sammelband.EINVALID, "invalid JSON body")
	}
	return nil
}
