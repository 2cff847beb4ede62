package sammelband

import (
	"context"
	"encoding/json"
)

// ReadingList is a read-it-later service the user can import URLs from.
// The authorization flow is: RequestToken, user approval on the service,
// then AccessToken with the approved request token.
type ReadingList interface {
	// RequestToken starts authorization and returns a request token.
	RequestToken(ctx context.Context) (string, error)

	// AccessToken exchanges an approved request token for an access token.
	AccessToken(ctx context.Context, requestToken string) (string, error)

	// List returns the user's saved items as the service reports them.
	List(ctx context.Context, accessToken string) (json.RawMessage, error)

	// AuthorizeURL is where the user approves requestToken.
	AuthorizeURL(requestToken string) string
}
