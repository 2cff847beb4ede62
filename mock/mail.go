package mock

import (
	"context"
	"encoding/json"

	"github.com/sammelband/sammelband"
)

// Compile-time interface verification.
var (
	_ sammelband.Mailer      = (*Mailer)(nil)
	_ sammelband.ReadingList = (*ReadingList)(nil)
)

// Mailer is a mock implementation of sammelband.Mailer.
type Mailer struct {
	SendFn func(ctx context.Context, msg *sammelband.Message) error
}

func (m *Mailer) Send(ctx context.Context, msg *sammelband.Message) error {
	return m.SendFn(ctx, msg)
}

// ReadingList is a mock implementation of sammelband.ReadingList.
type ReadingList struct {
	RequestTokenFn func(ctx context.Context) (string, error)
	AccessTokenFn  func(ctx context.Context, requestToken string) (string, error)
	ListFn         func(ctx context.Context, accessToken string) (json.RawMessage, error)
	AuthorizeURLFn func(requestToken string) string
}

func (r *ReadingList) RequestToken(ctx context.Context) (string, error) {
	return r.RequestTokenFn(ctx)
}

func (r *ReadingList) AccessToken(ctx context.Context, requestToken string) (string, error) {
	return r.AccessTokenFn(ctx, requestToken)
}

func (r *ReadingList) List(ctx context.Context, accessToken string) (json.RawMessage, error) {
	return r.ListFn(ctx, accessToken)
}

func (r *ReadingList) AuthorizeURL(requestToken string) string {
	return r.AuthorizeURLFn(requestToken)
}
