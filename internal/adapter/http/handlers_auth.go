package adapthttp

import (
	"errors"
	"net/http"

	"weighttracker/internal/domain"
)

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", nil)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, err := s.auth.Register(r.Context(), username, password)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		setFlash(w, "danger", "Username and password are required")
		http.Redirect(w, r, "/register", http.StatusFound)
	case errors.Is(err, domain.ErrConflict):
		setFlash(w, "warning", "Username is already taken")
		http.Redirect(w, r, "/register", http.StatusFound)
	case err != nil:
		s.internalError(w, r, err)
	default:
		setFlash(w, "success", "Registration successful. Please log in.")
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", map[string]bool{"SSOEnabled": s.oidc != nil})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.auth.Login(r.Context(), username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		setFlash(w, "danger", "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.setSessionCookie(w, token)
	setFlash(w, "success", "Logged in")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := s.sessionToken(r); token != "" {
		_ = s.auth.Logout(r.Context(), token)
	}
	clearSessionCookie(w)
	setFlash(w, "info", "Logged out")
	http.Redirect(w, r, "/login", http.StatusFound)
}
