// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"embed"
	"html/template"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"weighttracker/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"dashboard.html", "login.html", "register.html", "edit.html"}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth      *app.AuthService
	accounts  *app.AccountService
	weights   *app.WeightService
	dashboard *app.DashboardService

	secretKey  []byte
	logger     *zap.Logger
	ratePerMin int
	oidc       *OIDCConfig
	pages      map[string]*template.Template

	limitersMu sync.Mutex
	limiters   map[string]*ipLimiter
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, accounts *app.AccountService, weights *app.WeightService, dashboard *app.DashboardService, secretKey string, ratePerMin int, logger *zap.Logger) *Server {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return &Server{
		auth:       auth,
		accounts:   accounts,
		weights:    weights,
		dashboard:  dashboard,
		secretKey:  []byte(secretKey),
		ratePerMin: ratePerMin,
		logger:     logger,
		pages:      pages,
		limiters:   make(map[string]*ipLimiter),
	}
}

// SetOIDC enables the optional single sign-on routes.
func (s *Server) SetOIDC(cfg *OIDCConfig) {
	s.oidc = cfg
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	limited := s.rateLimitMiddleware

	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.Handle("POST /register", limited(http.HandlerFunc(s.handleRegister)))
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.Handle("POST /login", limited(http.HandlerFunc(s.handleLogin)))
	mux.Handle("GET /logout", s.requireAccount(s.handleLogout))

	mux.Handle("GET /{$}", s.requireAccount(s.handleDashboard))
	mux.Handle("POST /settings", s.requireAccount(s.handleSettings))
	mux.Handle("POST /add", s.requireAccount(s.handleAdd))
	mux.Handle("GET /edit/{id}", s.requireAccount(s.handleEditForm))
	mux.Handle("POST /edit/{id}", s.requireAccount(s.handleEdit))
	mux.Handle("GET /delete/{id}", s.requireAccount(s.handleDelete))

	if s.oidc != nil {
		mux.HandleFunc("GET /sso/login", s.handleSSOLogin)
		mux.HandleFunc("GET /sso/callback", s.handleSSOCallback)
	}

	return s.loggingMiddleware(mux)
}
