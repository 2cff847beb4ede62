package http

import (
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/sammelband/sammelband"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse reports whether login succeeded.
type LoginResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Email    string `json:"email,omitempty"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	NewEmail    string `json:"newEmail"`
	NewPassword string `json:"newPassword"`
}

// ResetRequest is the body of POST /api/reset.
type ResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// handleLogin handles "POST /api/login". Wrong credentials are reported in
// the body, not as an error status.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	user, err := s.Users.FindUserByEmail(r.Context(), req.Email)
	if sammelband.ErrorCode(err) == sammelband.ENOTFOUND {
		writeJSON(w, http.StatusOK, &LoginResponse{})
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	if err := s.Passwords.Compare(user.PasswordHash, req.Password); sammelband.ErrorCode(err) == sammelband.EUNAUTHORIZED {
		writeJSON(w, http.StatusOK, &LoginResponse{})
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	session.LoggedIn = true
	session.Email = user.Email
	writeJSON(w, http.StatusOK, &LoginResponse{LoggedIn: true, Email: user.Email})
}

// handleLogout handles "GET /api/logout".
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	SessionFromContext(r.Context()).Logout()
	writeText(w, http.StatusOK, "Logout successful")
}

// handleSignup handles "POST /api/signup".
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if err := sammelband.ValidatePassword(req.NewPassword); err != nil {
		s.Error(w, r, err)
		return
	}

	hash, err := s.Passwords.Hash(req.NewPassword)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	user := &sammelband.User{Email: req.NewEmail, PasswordHash: hash}
	if err := s.Users.CreateUser(r.Context(), user); err != nil {
		s.Error(w, r, err)
		return
	}

	session.Email = user.Email
	writeText(w, http.StatusOK, "Signup successful.")
}

// handleSendVerification handles "GET /api/send-verification".
func (s *Server) handleSendVerification(w http.ResponseWriter, r *http.Request) {
	if err := s.sendToken(r, sammelband.TokenVerify); err != nil {
		s.Error(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "Verification email sent.")
}

// handleSendReset handles "GET /api/send-reset-password".
func (s *Server) handleSendReset(w http.ResponseWriter, r *http.Request) {
	if err := s.sendToken(r, sammelband.TokenReset); err != nil {
		s.Error(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "Reset email sent")
}

// sendToken mails a token for purpose to the session's email address.
func (s *Server) sendToken(r *http.Request, purpose sammelband.TokenPurpose) error {
	session := SessionFromContext(r.Context())
	if s.Mailer == nil {
		return sammelband.Errorf(sammelband.EINVALID, "mail is not configured")
	}
	if session.Email == "" {
		return sammelband.Errorf(sammelband.EUNAUTHORIZED, "sign up or log in first")
	}
	if _, err := s.Users.FindUserByEmail(r.Context(), session.Email); err != nil {
		return err
	}

	token, err := s.Tokens.Encode(session.Email, purpose)
	if err != nil {
		return err
	}

	var msg sammelband.Message
	msg.To = session.Email
	switch purpose {
	case sammelband.TokenVerify:
		link := s.ServerURL + "/api/verify?email=" + url.QueryEscape(token)
		msg.Subject = "Verify your Sammelband account"
		msg.HTML = fmt.Sprintf(`<p>Click <a href="%s">here</a> to verify your email address. The link is valid for 24 hours.</p>`,
			html.EscapeString(link))
	case sammelband.TokenReset:
		link := s.ClientURL + "/reset?token=" + url.QueryEscape(token)
		msg.Subject = "Reset your Sammelband password"
		msg.HTML = fmt.Sprintf(`<p>Click <a href="%s">here</a> to choose a new password. The link is valid for 24 hours.</p>`,
			html.EscapeString(link))
	}
	return s.Mailer.Send(r.Context(), &msg)
}

// handleVerify handles "GET /api/verify?email=<token>". The query parameter
// is named email for compatibility with links already sent.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	token := r.URL.Query().Get("email")
	if token == "" {
		s.Error(w, r, sammelband.Errorf(sammelband.EINVALID, "verification token required"))
		return
	}
	email, err := s.Tokens.Decode(token, sammelband.TokenVerify)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	user, err := s.Users.FindUserByEmail(r.Context(), email)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	verified := true
	if _, err := s.Users.UpdateUser(r.Context(), user.ID, sammelband.UserUpdate{Verified: &verified}); err != nil {
		s.Error(w, r, err)
		return
	}

	session.LoggedIn = true
	session.Email = user.Email
	http.Redirect(w, r, s.redirectTarget(), http.StatusFound)
}

// handleReset handles "POST /api/reset".
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	email, err := s.Tokens.Decode(req.Token, sammelband.TokenReset)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if err := sammelband.ValidatePassword(req.Password); err != nil {
		s.Error(w, r, err)
		return
	}

	user, err := s.Users.FindUserByEmail(r.Context(), email)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	hash, err := s.Passwords.Hash(req.Password)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if _, err := s.Users.UpdateUser(r.Context(), user.ID, sammelband.UserUpdate{PasswordHash: &hash}); err != nil {
		s.Error(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "Password reset")
}

func (s *Server) redirectTarget() string {
	if s.ClientURL == "" {
		return "/"
	}
	return s.ClientURL
}
