// Package http serves the sammelband web API.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sammelband/sammelband"
	"github.com/sammelband/sammelband/batch"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before shutdown.
const ShutdownTimeout = 10 * time.Second

// DefaultRequestsPerMinute is the per-client request budget.
const DefaultRequestsPerMinute = 60

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = 1 << 20

// Binder compiles a submission into a stored document.
type Binder interface {
	Bind(ctx context.Context, req batch.Request) (*batch.Result, error)
}

// Server is the sammelband HTTP server. Services are assigned to the
// exported fields before Open is called.
type Server struct {
	ln     net.Listener
	server *http.Server

	handlerOnce sync.Once
	handler     http.Handler

	// Addr is the bind address, for example ":3001".
	Addr string

	// ClientURL is the front-end origin. It is allowed by CORS and is where
	// users land after verification and Pocket authorization.
	ClientURL string

	// ServerURL is the public origin of this server, used in mailed links.
	ServerURL string

	// PublicDir is served under /public.
	PublicDir string

	// RequestsPerMinute limits each client. Zero selects
	// DefaultRequestsPerMinute.
	RequestsPerMinute int

	Logger *slog.Logger

	Binder      Binder
	Documents   sammelband.DocumentStore
	Sessions    sammelband.SessionStore
	Users       sammelband.UserService
	Passwords   sammelband.PasswordHasher
	Tokens      sammelband.TokenService
	Mailer      sammelband.Mailer
	ReadingList sammelband.ReadingList
}

// NewServer returns a new Server.
func NewServer() *Server {
	return &Server{}
}

// Handler returns the server's routes with middleware applied. It is built
// on first use from the current field values.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() {
		s.handler = s.routes()
	})
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.cors())
	r.Use(s.rateLimit())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.loadSession)

		r.Get("/", s.handleState)
		r.Post("/submit", s.handleSubmit)
		r.Get("/download", s.handleDownload)
		r.Get("/mail", s.handleMail)
		r.Get("/delete", s.handleDelete)

		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)
		r.Post("/signup", s.handleSignup)
		r.Get("/send-verification", s.handleSendVerification)
		r.Get("/verify", s.handleVerify)
		r.Get("/send-reset-password", s.handleSendReset)
		r.Post("/reset", s.handleReset)

		r.Route("/pocket", func(r chi.Router) {
			r.Post("/request", s.handlePocketRequest)
			r.Get("/callback", s.handlePocketCallback)
			r.Get("/list", s.handlePocketList)
		})
	})

	if s.PublicDir != "" {
		r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(s.PublicDir))))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.Error(w, r, sammelband.Errorf(sammelband.ENOTFOUND, "no route for %s", r.URL.Path))
	})
	return r
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Binding a large batch renders every page in a browser.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.logger().Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// Port returns the TCP port the server is listening on, or zero.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// secureCookies reports whether the server is reached over HTTPS.
func (s *Server) secureCookies() bool {
	return strings.HasPrefix(s.ServerURL, "https://")
}
