package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/sammelband/sammelband"
	"github.com/sammelband/sammelband/batch"
)

// StateResponse reports what the front end should show for a session.
type StateResponse struct {
	PocketLoggedIn bool   `json:"pocketLoggedIn"`
	LoggedIn       bool   `json:"loggedIn"`
	LoggedInAs     string `json:"loggedInAs,omitempty"`
	Verified       bool   `json:"verified"`
	Email          string `json:"email"`
}

// SubmitRequest is the body of POST /api/submit.
type SubmitRequest struct {
	URLs   sammelband.URLList `json:"urls"`
	Format string             `json:"format"`
	Color  sammelband.Color   `json:"color"`
	Font   sammelband.Font    `json:"font"`
}

// SubmitResponse reports the outcome of a submission. MalformedURL is the
// newline-separated list of rejected URLs, or null.
type SubmitResponse struct {
	MalformedURL *string  `json:"malformedUrl"`
	Ready        bool     `json:"ready"`
	Failed       []string `json:"failed,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// handleState handles "GET /api".
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	resp := StateResponse{
		PocketLoggedIn: session.PocketAccessToken != "",
		LoggedIn:       session.LoggedIn,
		Email:          session.Email,
	}
	if session.LoggedIn {
		resp.LoggedInAs = session.Email
	}
	if session.Email != "" {
		user, err := s.Users.FindUserByEmail(r.Context(), session.Email)
		if err != nil && sammelband.ErrorCode(err) != sammelband.ENOTFOUND {
			s.Error(w, r, err)
			return
		}
		resp.Verified = user != nil && user.Verified
	}

	writeJSON(w, http.StatusOK, &resp)
}

// handleSubmit handles "POST /api/submit".
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	format, err := sammelband.ParseFormat(req.Format)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	result, err := s.Binder.Bind(r.Context(), batch.Request{
		ID:     session.ID,
		URLs:   req.URLs,
		Format: format,
		Style:  sammelband.Style{Color: req.Color, Font: req.Font},
	})
	if err != nil {
		if result != nil && sammelband.ErrorCode(err) == sammelband.EINVALID {
			writeJSON(w, http.StatusBadRequest, &SubmitResponse{
				MalformedURL: report(result.BadURLs),
				Failed:       result.Failed,
				Error:        sammelband.ErrorMessage(err),
			})
			return
		}
		s.Error(w, r, err)
		return
	}

	session.Format = result.Document.Format
	writeJSON(w, http.StatusOK, &SubmitResponse{
		MalformedURL: report(result.BadURLs),
		Ready:        true,
		Failed:       result.Failed,
	})
}

func report(badURLs string) *string {
	if badURLs == "" {
		return nil
	}
	return &badURLs
}

// currentDocument returns the session's most recently compiled document.
func (s *Server) currentDocument(r *http.Request) (*sammelband.Document, error) {
	session := SessionFromContext(r.Context())
	if session.Format == "" {
		return nil, sammelband.Errorf(sammelband.ENOTFOUND, "no sammelband has been compiled yet")
	}
	return s.Documents.FindDocument(r.Context(), session.ID, session.Format)
}

// handleDownload handles "GET /api/download".
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	doc, err := s.currentDocument(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename()))
	w.Header().Set("ETag", doc.ETag)
	http.ServeContent(w, r, doc.Filename(), doc.UpdatedAt, bytes.NewReader(doc.Content))
}

// handleMail handles "GET /api/mail?type=body|attachment".
func (s *Server) handleMail(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if s.Mailer == nil {
		s.Error(w, r, sammelband.Errorf(sammelband.EINVALID, "mail is not configured"))
		return
	}

	user, err := s.verifiedUser(r, session)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	doc, err := s.currentDocument(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	msg := &sammelband.Message{To: user.Email, Subject: "Your Sammelband"}
	switch mailType := r.URL.Query().Get("type"); mailType {
	case "body":
		if doc.Format != sammelband.FormatHTML {
			s.Error(w, r, sammelband.Errorf(sammelband.EINVALID, "only HTML sammelbands can be sent as the message body"))
			return
		}
		msg.HTML = string(doc.Content)
	case "attachment", "":
		msg.HTML = "<p>Your sammelband is attached.</p>"
		msg.Attachments = []sammelband.Attachment{{
			Filename:    doc.Filename(),
			ContentType: doc.Format.ContentType(),
			Content:     doc.Content,
		}}
	default:
		s.Error(w, r, sammelband.Errorf(sammelband.EINVALID, "unknown mail type %q", mailType))
		return
	}

	if err := s.Mailer.Send(r.Context(), msg); err != nil {
		s.Error(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "Mail sent")
}

// handleDelete handles "GET /api/delete".
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if err := s.Documents.DeleteDocuments(r.Context(), session.ID); err != nil {
		s.Error(w, r, err)
		return
	}
	session.Format = ""
	writeText(w, http.StatusOK, "Sammelband deleted")
}

// verifiedUser returns the logged-in user of session, requiring a verified
// email address.
func (s *Server) verifiedUser(r *http.Request, session *sammelband.Session) (*sammelband.User, error) {
	if !session.LoggedIn || session.Email == "" {
		return nil, sammelband.Errorf(sammelband.EUNAUTHORIZED, "log in to continue")
	}
	user, err := s.Users.FindUserByEmail(r.Context(), session.Email)
	if sammelband.ErrorCode(err) == sammelband.ENOTFOUND {
		return nil, sammelband.Errorf(sammelband.EUNAUTHORIZED, "log in to continue")
	} else if err != nil {
		return nil, err
	}
	if !user.Verified {
		return nil, sammelband.Errorf(sammelband.EUNAUTHORIZED, "verify your email address first")
	}
	return user, nil
}
