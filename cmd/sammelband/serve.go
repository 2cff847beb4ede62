package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sammelband/sammelband/batch"
	"github.com/sammelband/sammelband/bcrypt"
	"github.com/sammelband/sammelband/fs"
	"github.com/sammelband/sammelband/goquery"
	"github.com/sammelband/sammelband/htmltomarkdown"
	sbhttp "github.com/sammelband/sammelband/http"
	"github.com/sammelband/sammelband/jwt"
	"github.com/sammelband/sammelband/pocket"
	"github.com/sammelband/sammelband/readability"
	"github.com/sammelband/sammelband/rod"
	sbslog "github.com/sammelband/sammelband/slog"
	"github.com/sammelband/sammelband/smtp"
	"github.com/sammelband/sammelband/sqlite"
	"github.com/sammelband/sammelband/trafilatura"
)

// SessionPurgeInterval is how often expired sessions are removed.
const SessionPurgeInterval = time.Hour

// Run wires every service, serves the API and blocks until the context is
// canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	m, logger := deps.Main, deps.Logger
	defer m.Close()

	if c.TokenSecret == "" {
		fmt.Fprintln(deps.Stderr, "Hint: Set REGISTRATION_TOKEN_SECRET to a long random string")
		return fmt.Errorf("token secret required")
	}
	tokens, err := jwt.NewTokenService(c.TokenSecret)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(c.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set SAMMELBAND_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	sessions := sqlite.NewSessionStore(m.DB)
	documents := fs.NewDocumentStore(c.PublicDir)

	binder := &batch.Binder{
		Extractor: batch.FallbackExtractor{
			sbslog.NewLoggingExtractor(readability.NewExtractor(), logger.With("extractor", "readability")),
			sbslog.NewLoggingExtractor(trafilatura.NewExtractor(), logger.With("extractor", "trafilatura")),
		},
		Sanitizer:   goquery.NewSanitizer(),
		Converter:   htmltomarkdown.NewConverter(),
		Documents:   documents,
		RateLimiter: batch.NewDomainLimiter(c.DomainRate, 1),
		Logger:      logger,
		Concurrency: c.Concurrency,
	}
	if c.Static {
		binder.Fetcher = sbslog.NewLoggingFetcher(sbhttp.NewFetcher(), logger)
	} else {
		var opts []rod.ManagerOption
		if c.Browser != "" {
			opts = append(opts, rod.WithBrowserBin(c.Browser))
		}
		if c.NoSandbox {
			opts = append(opts, rod.WithNoSandbox())
		}
		if m.Browser, err = rod.NewBrowserManager(opts...); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		binder.Fetcher = sbslog.NewLoggingFetcher(rod.NewFetcher(m.Browser), logger)
		binder.PDFRenderer = sbslog.NewLoggingPDFRenderer(rod.NewPDFRenderer(m.Browser), logger)
	}

	serverURL := c.ServerURL
	if serverURL == "" {
		serverURL = "http://localhost:" + strconv.Itoa(c.Port)
	}

	m.HTTPServer = sbhttp.NewServer()
	m.HTTPServer.Addr = ":" + strconv.Itoa(c.Port)
	m.HTTPServer.ClientURL = strings.TrimSuffix(c.ClientURL, "/")
	m.HTTPServer.ServerURL = strings.TrimSuffix(serverURL, "/")
	m.HTTPServer.PublicDir = c.PublicDir
	m.HTTPServer.RequestsPerMinute = c.RateLimit
	m.HTTPServer.Logger = logger
	m.HTTPServer.Binder = binder
	m.HTTPServer.Documents = documents
	m.HTTPServer.Sessions = sessions
	m.HTTPServer.Users = sqlite.NewUserService(m.DB)
	m.HTTPServer.Passwords = bcrypt.NewPasswordHasher(0)
	m.HTTPServer.Tokens = tokens

	if c.SMTP.Host != "" {
		mailer, err := smtp.NewMailer(smtp.Config{
			Host:     c.SMTP.Host,
			Port:     c.SMTP.Port,
			Username: c.SMTP.User,
			Password: c.SMTP.Password,
			From:     c.SMTP.From,
		})
		if err != nil {
			return fmt.Errorf("failed to configure mail: %w", err)
		}
		m.HTTPServer.Mailer = sbslog.NewLoggingMailer(mailer, logger)
	} else {
		logger.Warn("mail disabled, set SMTP_HOST to enable")
	}

	if c.PocketConsumerKey != "" {
		client, err := pocket.NewClient(c.PocketConsumerKey, m.HTTPServer.ServerURL+"/api/pocket/callback")
		if err != nil {
			return fmt.Errorf("failed to configure pocket: %w", err)
		}
		m.HTTPServer.ReadingList = sbslog.NewLoggingReadingList(client, logger)
	} else {
		logger.Warn("pocket import disabled, set POCKET_CONSUMER_KEY to enable")
	}

	if err := m.HTTPServer.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", m.HTTPServer.Addr, err)
	}
	logger.Info("sammelband listening",
		"port", m.HTTPServer.Port(),
		"server_url", m.HTTPServer.ServerURL,
		"static", c.Static,
	)

	go purgeSessions(deps.Ctx, sessions, logger)

	<-deps.Ctx.Done()
	logger.Info("shutting down")
	return nil
}

// sessionPurger removes expired sessions.
type sessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// purgeSessions runs the purger every SessionPurgeInterval until ctx is
// canceled.
func purgeSessions(ctx context.Context, sessions sessionPurger, logger *slog.Logger) {
	ticker := time.NewTicker(SessionPurgeInterval)
	defer ticker.Stop()
	for {
		n, err := sessions.PurgeExpired(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Error("purge sessions", "err", err)
		} else if n > 0 {
			logger.Info("purged sessions", "count", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
