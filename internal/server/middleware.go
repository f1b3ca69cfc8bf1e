package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/errs"
	"github.com/Zachkp/portfolio/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	sessionKey      = "session"
	sessionCookie   = "admin_session"
)

// requestID reuses an upstream X-Request-ID or generates one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// requestLogger writes one line per request, leveled by status.
func requestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var e *zerolog.Event
		switch {
		case status >= 500:
			e = logger.Error()
		case status >= 400:
			e = logger.Warn()
		default:
			e = logger.Info()
		}
		if len(c.Errors) > 0 {
			e = e.Str("errors", c.Errors.String())
		}
		e.Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// requireSession redirects to the login page unless the request carries a
// valid session cookie. The session is put on the request context.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := s.session(c)
		if !ok {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(sessionKey, session)
		c.Request = c.Request.WithContext(identity.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

func (s *Server) session(c *gin.Context) (identity.Session, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil {
		return identity.Session{}, false
	}
	session, err := s.Auth.Verify(token)
	if err != nil {
		return identity.Session{}, false
	}
	return session, true
}

// limiter hands out one token bucket per client IP.
type limiter struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	clients   map[string]*client
	lastSweep time.Time
}

// limiterIdle is how long a bucket goes unused before it is full again and
// can be dropped.
const limiterIdle = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiter(perMinute int) *limiter {
	return &limiter{
		every:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		clients: make(map[string]*client),
	}
}

func (l *limiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > limiterIdle {
		l.sweep(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *limiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > limiterIdle {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

// rateLimit rejects requests from a client IP beyond perMinute, rendering
// onLimit for the rejected request.
func (s *Server) rateLimit(perMinute int, onLimit func(*gin.Context, *errs.HTTPError)) gin.HandlerFunc {
	l := newLimiter(perMinute)
	return func(c *gin.Context) {
		if l.allow(c.ClientIP(), time.Now()) {
			c.Next()
			return
		}
		s.Logger.Warn().Str("client", s.hashIP(c.ClientIP())).Str("path", c.Request.URL.Path).Msg("rate limit hit")
		onLimit(c, errs.NewTooManyRequestsError("Too many attempts. Please wait a minute and try again."))
		c.Abort()
	}
}

// hashIP keeps client addresses out of the logs while still letting repeated
// attempts from one client be correlated.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func newSalt() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
