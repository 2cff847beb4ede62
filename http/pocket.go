package http

import (
	"net/http"

	"github.com/sammelband/sammelband"
)

// PocketRequestResponse is the reply of POST /api/pocket/request.
type PocketRequestResponse struct {
	RequestToken string `json:"requestToken"`
	AuthorizeURL string `json:"authorizeUrl"`
}

func (s *Server) readingList() (sammelband.ReadingList, error) {
	if s.ReadingList == nil {
		return nil, sammelband.Errorf(sammelband.EINVALID, "pocket is not configured")
	}
	return s.ReadingList, nil
}

// handlePocketRequest handles "POST /api/pocket/request".
func (s *Server) handlePocketRequest(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	list, err := s.readingList()
	if err != nil {
		s.Error(w, r, err)
		return
	}

	token, err := list.RequestToken(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	session.PocketRequestToken = token
	writeJSON(w, http.StatusOK, &PocketRequestResponse{
		RequestToken: token,
		AuthorizeURL: list.AuthorizeURL(token),
	})
}

// handlePocketCallback handles "GET /api/pocket/callback", where Pocket
// sends the user after they approve the request token.
func (s *Server) handlePocketCallback(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	list, err := s.readingList()
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if session.PocketRequestToken == "" {
		s.Error(w, r, sammelband.Errorf(sammelband.EINVALID, "no pocket authorization in progress"))
		return
	}

	token, err := list.AccessToken(r.Context(), session.PocketRequestToken)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	session.PocketAccessToken = token
	session.PocketRequestToken = ""
	http.Redirect(w, r, s.redirectTarget(), http.StatusFound)
}

// handlePocketList handles "GET /api/pocket/list".
func (s *Server) handlePocketList(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	list, err := s.readingList()
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if session.PocketAccessToken == "" {
		s.Error(w, r, sammelband.Errorf(sammelband.EUNAUTHORIZED, "connect pocket first"))
		return
	}

	items, err := list.List(r.Context(), session.PocketAccessToken)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(items)
}
