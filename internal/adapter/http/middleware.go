package adapthttp

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"weighttracker/internal/domain"
)

type contextKey string

const accountContextKey contextKey = "account"

// requireAccount validates the session cookie and injects the account into
// the request context, redirecting to the login page otherwise.
func (s *Server) requireAccount(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.sessionToken(r)
		if token == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		acct, err := s.auth.ValidateSession(r.Context(), token)
		if err != nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, acct)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accountFromContext returns the authenticated account set by requireAccount.
func accountFromContext(r *http.Request) *domain.Account {
	acct, _ := r.Context().Value(accountContextKey).(*domain.Account)
	return acct
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type ipLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// rateLimitMiddleware applies a per-IP token bucket to credential endpoints.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	perMin := s.ratePerMin
	if perMin < 1 {
		perMin = 1
	}
	limit := rate.Every(time.Minute / time.Duration(perMin))
	burst := max(perMin/2, 1)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.getLimiter(ip, limit, burst).Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()

	now := time.Now()
	for k, l := range s.limiters {
		if now.After(l.expires) {
			delete(s.limiters, k)
		}
	}

	if l, ok := s.limiters[key]; ok {
		l.expires = now.Add(5 * time.Minute)
		return l.limiter
	}
	l := &ipLimiter{limiter: rate.NewLimiter(limit, burst), expires: now.Add(5 * time.Minute)}
	s.limiters[key] = l
	return l.limiter
}
