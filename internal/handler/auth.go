package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/service"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// PasswordRequest is the body of POST /auth/password-strength.
type PasswordRequest struct {
	Password string `json:"password"`
}

// User is the public view of a registered user. The password never leaves
// the service layer.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

// Session is the public view of a session.
type Session struct {
	User       domain.SessionUser `json:"user"`
	LoginTime  time.Time          `json:"login_time"`
	ExpiresAt  time.Time          `json:"expires_at"`
	RememberMe bool               `json:"remember_me"`
}

// SessionResponse is the body of GET /auth/session and POST /auth/login.
type SessionResponse struct {
	Authenticated bool     `json:"authenticated"`
	Session       *Session `json:"session,omitempty"`
}

// RegisterResponse is the body of POST /auth/register.
type RegisterResponse struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	user, sess, err := s.auth.Register(r.Context(), service.Registration{
		Name:            body.Name,
		Email:           body.Email,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterResponse{User: userToResponse(user), Session: sessionToResponse(sess)})
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	sess, err := s.auth.Login(r.Context(), service.Credentials{Email: body.Email, Password: body.Password, RememberMe: body.RememberMe})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := sessionToResponse(sess)
	writeJSON(w, http.StatusOK, SessionResponse{Authenticated: true, Session: &out})
}

// Logout handles POST /auth/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /auth/session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok, err := s.auth.Session(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, SessionResponse{})
		return
	}
	out := sessionToResponse(sess)
	writeJSON(w, http.StatusOK, SessionResponse{Authenticated: true, Session: &out})
}

// PasswordStrength handles POST /auth/password-strength.
// It is a pure computation and touches no storage.
func (s *Server) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var body PasswordRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, auth.PasswordStrength(body.Password))
}

// --- mapping helpers --------------------------------------------------------

func userToResponse(u domain.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, LastLogin: u.LastLogin}
}

func sessionToResponse(s domain.Session) Session {
	return Session{User: s.User, LoginTime: s.LoginTime, ExpiresAt: s.ExpiresAt, RememberMe: s.RememberMe}
}
