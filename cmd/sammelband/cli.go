package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds what every command needs at run time.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Main   *Main

	// Verbose is set by the --verbose flag.
	Verbose bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" env:"SAMMELBAND_VERBOSE" help:"Log debug output"`

	Serve    ServeCmd    `cmd:"" default:"withargs" help:"Run the sammelband web service (default)"`
	Classify ClassifyCmd `cmd:"" help:"Check URLs and report the malformed ones"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port      int    `env:"PORT" default:"3001" help:"Port to listen on"`
	ClientURL string `name:"client-url" env:"CLIENT_URL" help:"Front-end origin allowed by CORS"`
	ServerURL string `name:"server-url" env:"SERVER_URL" help:"Public origin of this server, used in mailed links"`
	DB        string `name:"db" env:"SAMMELBAND_DB" default:"sammelband.db" help:"SQLite database path"`
	PublicDir string `name:"public-dir" env:"SAMMELBAND_PUBLIC_DIR" default:"public" help:"Directory for compiled documents"`

	TokenSecret       string `name:"token-secret" env:"REGISTRATION_TOKEN_SECRET" help:"Secret signing verification and reset tokens"`
	PocketConsumerKey string `name:"pocket-consumer-key" env:"POCKET_CONSUMER_KEY" help:"Pocket consumer key; Pocket import is disabled without it"`

	SMTP SMTPFlags `embed:"" prefix:"smtp-" envprefix:"SMTP_"`

	Browser     string  `env:"SAMMELBAND_BROWSER" help:"Chrome or Chromium executable"`
	NoSandbox   bool    `name:"no-sandbox" env:"SAMMELBAND_NO_SANDBOX" help:"Disable the Chrome sandbox (containers running as root)"`
	Static      bool    `env:"SAMMELBAND_STATIC" help:"Load pages over plain HTTP without a browser; PDF output is unavailable"`
	Concurrency int     `short:"c" default:"3" help:"Pages loaded at once per submission"`
	DomainRate  float64 `name:"domain-rate" default:"1" help:"Page loads per second per site"`
	RateLimit   int     `name:"rate-limit" env:"SAMMELBAND_RATE_LIMIT" default:"60" help:"API requests per minute per client"`
}

// SMTPFlags configure outgoing mail. Mail is disabled without a host.
type SMTPFlags struct {
	Host     string `env:"HOST" help:"SMTP server host"`
	Port     int    `env:"PORT" default:"587" help:"SMTP server port"`
	User     string `env:"USER" help:"SMTP username"`
	Password string `env:"PASSWORD" help:"SMTP password"`
	From     string `env:"FROM" help:"Sender address"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	URLs []string `arg:"" help:"URLs to check"`
}
