package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sammelband/sammelband"
	"github.com/sammelband/sammelband/batch"
	sbhttp "github.com/sammelband/sammelband/http"
	"github.com/sammelband/sammelband/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Compiling and retrieving a sammelband

func binderReturning(t *testing.T, got *batch.Request, result *batch.Result, err error) *mockBinder {
	t.Helper()
	return &mockBinder{
		BindFn: func(ctx context.Context, req batch.Request) (*batch.Result, error) {
			if got != nil {
				*got = req
			}
			return result, err
		},
	}
}

type mockBinder struct {
	BindFn func(ctx context.Context, req batch.Request) (*batch.Result, error)
}

func (b *mockBinder) Bind(ctx context.Context, req batch.Request) (*batch.Result, error) {
	return b.BindFn(ctx, req)
}

func verifiedUser() *mock.UserService {
	return &mock.UserService{
		FindUserByEmailFn: func(ctx context.Context, email string) (*sammelband.User, error) {
			return &sammelband.User{ID: "u1", Email: email, PasswordHash: "hash", Verified: true}, nil
		},
	}
}

func TestServer_State(t *testing.T) {
	t.Parallel()

	t.Run("new session is logged out", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.start(t)

		resp := ts.get(t, "/api")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"pocketLoggedIn":false,"loggedIn":false,"verified":false,"email":""}`, readBody(t, resp))
	})

	t.Run("reports account and pocket state", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Users = verifiedUser()
		ts.start(t)
		ts.setSession(t, sammelband.Session{ID: "s1", Email: "ada@example.com", LoggedIn: true, PocketAccessToken: "acc"})

		resp := ts.get(t, "/api")

		assert.JSONEq(t, `{"pocketLoggedIn":true,"loggedIn":true,"loggedInAs":"ada@example.com","verified":true,"email":"ada@example.com"}`,
			readBody(t, resp))
	})

	t.Run("signed up but unverified", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Users = &mock.UserService{
			FindUserByEmailFn: func(ctx context.Context, email string) (*sammelband.User, error) {
				return &sammelband.User{ID: "u1", Email: email}, nil
			},
		}
		ts.start(t)
		ts.setSession(t, sammelband.Session{ID: "s1", Email: "ada@example.com"})

		state := decode[sbhttp.StateResponse](t, ts.get(t, "/api"))

		assert.False(t, state.LoggedIn)
		assert.Empty(t, state.LoggedInAs)
		assert.False(t, state.Verified)
		assert.Equal(t, "ada@example.com", state.Email)
	})
}

func TestServer_Submit(t *testing.T) {
	t.Parallel()

	t.Run("binds submission under the session id", func(t *testing.T) {
		t.Parallel()

		var got batch.Request
		ts := newTestServer(t)
		ts.Binder = binderReturning(t, &got, &batch.Result{
			Document: &sammelband.Document{Format: sammelband.FormatMarkdown},
		}, nil)
		ts.start(t)

		resp := ts.post(t, "/api/submit", map[string]any{
			"urls":   "https://example.com/a",
			"format": "md",
			"color":  "dark",
			"font":   "sansSerif",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"malformedUrl":null,"ready":true}`, readBody(t, resp))

		session := ts.session(t)
		assert.Equal(t, session.ID, got.ID)
		assert.Equal(t, []string{"https://example.com/a"}, got.URLs)
		assert.Equal(t, sammelband.FormatMarkdown, got.Format)
		assert.Equal(t, sammelband.Style{Color: sammelband.ColorDark, Font: sammelband.FontSansSerif}, got.Style)
		assert.Equal(t, sammelband.FormatMarkdown, session.Format)
	})

	t.Run("reports malformed URLs", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Binder = binderReturning(t, nil, &batch.Result{
			BadURLs:  "not a url\nftp://example.com",
			Failed:   []string{"https://example.com/gone"},
			Document: &sammelband.Document{Format: sammelband.FormatHTML},
		}, nil)
		ts.start(t)

		resp := ts.post(t, "/api/submit", map[string]any{"urls": []string{"https://example.com/a"}})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"malformedUrl":"not a url\nftp://example.com","ready":true,"failed":["https://example.com/gone"]}`,
			readBody(t, resp))
	})

	t.Run("nothing usable is a bad request with the report", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Binder = binderReturning(t, nil, &batch.Result{BadURLs: "not a url"},
			sammelband.Errorf(sammelband.EINVALID, "no valid URLs submitted"))
		ts.start(t)

		resp := ts.post(t, "/api/submit", map[string]any{"urls": "not a url"})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"malformedUrl":"not a url","ready":false,"error":"no valid URLs submitted"}`, readBody(t, resp))
		assert.Empty(t, ts.session(t).Format)
	})

	t.Run("rejects non-string urls", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Binder = binderReturning(t, nil, nil, nil)
		ts.start(t)

		resp := ts.post(t, "/api/submit", `{"urls":["https://example.com",42]}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.start(t)

		resp := ts.post(t, "/api/submit", `{"urls":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid JSON body", decode[sbhttp.ErrorResponse](t, resp).Error)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.start(t)

		resp := ts.post(t, "/api/submit", map[string]any{"urls": "https://example.com/a", "format": "docx"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("hides internal failures", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Binder = binderReturning(t, nil, nil, context.DeadlineExceeded)
		ts.start(t)

		resp := ts.post(t, "/api/submit", map[string]any{"urls": "https://example.com/a"})

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal error.", decode[sbhttp.ErrorResponse](t, resp).Error)
	})
}

func TestServer_Download(t *testing.T) {
	t.Parallel()

	t.Run("nothing compiled yet", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.start(t)

		resp := ts.get(t, "/api/download")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("serves the document as an attachment", func(t *testing.T) {
		t.Parallel()

		var gotID string
		var gotFormat sammelband.Format
		ts := newTestServer(t)
		ts.Documents = &mock.DocumentStore{
			FindDocumentFn: func(ctx context.Context, id string, format sammelband.Format) (*sammelband.Document, error) {
				gotID, gotFormat = id, format
				return &sammelband.Document{
					ID: id, Format: format, Content: []byte("# Hello"),
					ETag: `"abc"`, UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		ts.start(t)
		ts.setSession(t, sammelband.Session{ID: "s1", Format: sammelband.FormatMarkdown})

		resp := ts.get(t, "/api/download")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "s1", gotID)
		assert.Equal(t, sammelband.FormatMarkdown, gotFormat)
		assert.Equal(t, `attachment; filename="sammelband.md"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, `"abc"`, resp.Header.Get("ETag"))
		assert.Equal(t, "# Hello", readBody(t, resp))
	})

	t.Run("honours If-None-Match", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Documents = &mock.DocumentStore{
			FindDocumentFn: func(ctx context.Context, id string, format sammelband.Format) (*sammelband.Document, error) {
				return &sammelband.Document{ID: id, Format: format, Content: []byte("x"), ETag: `"abc"`}, nil
			},
		}
		ts.start(t)
		ts.setSession(t, sammelband.Session{ID: "s1", Format: sammelband.FormatHTML})

		req, err := http.NewRequest(http.MethodGet, ts.url+"/api/download", nil)
		require.NoError(t, err)
		req.Header.Set("If-None-Match", `"abc"`)
		resp, err := ts.client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	})
}

func TestServer_Mail(t *testing.T) {
	t.Parallel()

	document := &mock.DocumentStore{
		FindDocumentFn: func(ctx context.Context, id string, format sammelband.Format) (*sammelband.Document, error) {
			return &sammelband.Document{ID: id, Format: format, Content: []byte("<h1>Doc</h1>")}, nil
		},
	}

	newMailServer := func(t *testing.T, sent *[]*sammelband.Message) *testServer {
		ts := newTestServer(t)
		ts.Users = verifiedUser()
		ts.Documents = document
		ts.Mailer = &mock.Mailer{
			SendFn: func(ctx context.Context, msg *sammelband.Message) error {
				*sent = append(*sent, msg)
				return nil
			},
		}
		ts.start(t)
		return ts
	}

	t.Run("requires login", func(t *testing.T) {
		t.Parallel()

		var sent []*sammelband.Message
		ts := newMailServer(t, &sent)
		ts.setSession(t, sammelband.Session{ID: "s1", Format: sammelband.FormatHTML})

		resp := ts.get(t, "/api/mail?type=body")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Empty(t, sent)
	})

	t.Run("requires verified email", func(t *testing.T) {
		t.Parallel()

		var sent []*sammelband.Message
		ts := newMailServer(t, &sent)
		ts.Users.(*mock.UserService).FindUserByEmailFn = func(ctx context.Context, email string) (*sammelband.User, error) {
			return &sammelband.User{ID: "u1", Email: email}, nil
		}
		ts.setSession(t, sammelband.Session{ID: "s1", Email: "ada@example.com", LoggedIn: true, Format: sammelband.FormatHTML})

		resp := ts.get(t, "/api/mail?type=body")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "verify your email address first", decode[sbhttp.ErrorResponse](t, resp).Error)
	})

	t.Run("sends html document as body", func(t *testing.T) {
		t.Parallel()

		var sent []*sammelband.Message
		ts := newMailServer(t, &sent)
		ts.setSession(t, sammelband.Session{ID: "s1", Email: "ada@example.com", LoggedIn: true, Format: sammelband.FormatHTML})

		resp := ts.get(t, "/api/mail?type=body")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, sent, 1)
		assert.Equal(t, "ada@example.com", sent[0].To)
		assert.Equal(t, "<h1>Doc</h1>", sent[0].HTML)
		assert.Empty(t, sent[0].Attachments)
	})

	t.Run("sends document as attachment", func(t *testing.T) {
		t.Parallel()

		var sent []*sammelband.Message
		ts := newMailServer(t, &sent)
		ts.setSession(t, sammelband.Session{ID: "s1", Email: "ada@example.com", LoggedIn: true, Format: sammelband.FormatPDF})

		resp := ts.get(t, "/api/mail?type=attachment")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, sent, 1)
		require.Len(t, sent[0].Attachments, 1)
		att := sent[0].Attachments[0]
		assert.Equal(t, "sammelband.pdf", att.Filename)
		assert.Equal(t, "application/pdf", att.ContentType)
		assert.Equal(t, "<h1>Doc</h1>", string(att.Content))
	})

	t.Run("body type needs an html document", func(t *testing.T) {
		t.Parallel()

		var sent []*sammelband.Message
		ts := newMailServer(t, &sent)
		ts.setSession(t, sammelband.Session{ID: "s1", Email: "ada@example.com", LoggedIn: true, Format: sammelband.FormatPDF})

		resp := ts.get(t, "/api/mail?type=body")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, sent)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		t.Parallel()

		var sent []*sammelband.Message
		ts := newMailServer(t, &sent)
		ts.setSession(t, sammelband.Session{ID: "s1", Email: "ada@example.com", LoggedIn: true, Format: sammelband.FormatHTML})

		resp := ts.get(t, "/api/mail?type=fax")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("mail not configured", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.start(t)

		resp := ts.get(t, "/api/mail?type=body")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deletes the session's documents", func(t *testing.T) {
		t.Parallel()

		var deleted string
		ts := newTestServer(t)
		ts.Documents = &mock.DocumentStore{
			DeleteDocumentsFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		ts.start(t)
		ts.setSession(t, sammelband.Session{ID: "s1", Format: sammelband.FormatHTML})

		resp := ts.get(t, "/api/delete")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Sammelband deleted", readBody(t, resp))
		assert.Equal(t, "s1", deleted)
		assert.Empty(t, ts.session(t).Format)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		ts.Documents = &mock.DocumentStore{
			DeleteDocumentsFn: func(ctx context.Context, id string) error {
				return sammelband.Errorf(sammelband.ENOTFOUND, "document not found")
			},
		}
		ts.start(t)

		resp := ts.get(t, "/api/delete")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
