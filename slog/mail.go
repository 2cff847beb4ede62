package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sammelband/sammelband"
)

var (
	_ sammelband.Mailer      = (*LoggingMailer)(nil)
	_ sammelband.ReadingList = (*LoggingReadingList)(nil)
)

// LoggingMailer wraps a Mailer with logging.
type LoggingMailer struct {
	next   sammelband.Mailer
	logger *slog.Logger
}

// NewLoggingMailer creates a new LoggingMailer.
func NewLoggingMailer(next sammelband.Mailer, logger *slog.Logger) *LoggingMailer {
	return &LoggingMailer{next: next, logger: logger}
}

// Send logs the delivery and delegates to the wrapped mailer. The message
// body is not logged.
func (m *LoggingMailer) Send(ctx context.Context, msg *sammelband.Message) (err error) {
	defer func(begin time.Time) {
		m.logger.Info("send mail",
			"to", msg.To,
			"subject", msg.Subject,
			"attachments", len(msg.Attachments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Send(ctx, msg)
}

// LoggingReadingList wraps a ReadingList with logging. Tokens are never
// logged.
type LoggingReadingList struct {
	next   sammelband.ReadingList
	logger *slog.Logger
}

// NewLoggingReadingList creates a new LoggingReadingList.
func NewLoggingReadingList(next sammelband.ReadingList, logger *slog.Logger) *LoggingReadingList {
	return &LoggingReadingList{next: next, logger: logger}
}

// RequestToken logs and delegates to the wrapped reading list.
func (l *LoggingReadingList) RequestToken(ctx context.Context) (token string, err error) {
	defer func(begin time.Time) {
		l.logger.Info("reading list request token", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return l.next.RequestToken(ctx)
}

// AccessToken logs and delegates to the wrapped reading list.
func (l *LoggingReadingList) AccessToken(ctx context.Context, requestToken string) (token string, err error) {
	defer func(begin time.Time) {
		l.logger.Info("reading list access token", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return l.next.AccessToken(ctx, requestToken)
}

// List logs the response size and delegates to the wrapped reading list.
func (l *LoggingReadingList) List(ctx context.Context, accessToken string) (list json.RawMessage, err error) {
	defer func(begin time.Time) {
		l.logger.Info("reading list",
			"bytes", len(list),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.List(ctx, accessToken)
}

// AuthorizeURL delegates to the wrapped reading list.
func (l *LoggingReadingList) AuthorizeURL(requestToken string) string {
	return l.next.AuthorizeURL(requestToken)
}
