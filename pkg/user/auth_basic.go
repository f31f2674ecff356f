package user

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"
)

const (
	maxFailures = 10
	blockTimer  = 1 * time.Hour
)

type basicAuthContext struct {
	UsersDatabase *UsersDatabase
	rateLimiter   *xsync.MapOf[string, *rate.Limiter]
	blockedUsers  map[string]time.Time
	failureCount  map[string]int64
	mu            sync.Mutex
}

func NewBasicAuth(userDatabase *UsersDatabase) *basicAuthContext {
	return &basicAuthContext{
		UsersDatabase: userDatabase,
		rateLimiter:   xsync.NewMapOf[string, *rate.Limiter](),
		blockedUsers:  make(map[string]time.Time),
		failureCount:  make(map[string]int64),
	}
}

func (a *basicAuthContext) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			a.httpError(w, http.StatusUnauthorized)
			return
		}

		if a.isBlocked(username) {
			a.httpError(w, http.StatusTooManyRequests)
			return
		}

		if !a.allow(username) {
			a.blockUser(w, r, username)
			a.httpError(w, http.StatusTooManyRequests)
			return
		}

		user := a.UsersDatabase.FindByPassword(username, password)
		if user == nil {
			a.touchFailureCount(w, r, username)
			a.httpError(w, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), remoteUser, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *basicAuthContext) CreateToken(string, string) (string, error) {
	return "", fmt.Errorf("tokens are not supported by basic auth")
}

func (a *basicAuthContext) httpError(w http.ResponseWriter, status int) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
	http.Error(w, http.StatusText(status), status)
}

func (a *basicAuthContext) allow(username string) bool {
	limiter, _ := a.rateLimiter.LoadOrCompute(username, func() *rate.Limiter {
		return rate.NewLimiter(1, 5)
	})

	return limiter.Allow()
}

func (a *basicAuthContext) isBlocked(username string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	blockTime, exists := a.blockedUsers[username]
	if !exists {
		return false
	}

	if time.Now().After(blockTime) {
		delete(a.blockedUsers, username)
		delete(a.failureCount, username)
		return false
	}

	return true
}

func (a *basicAuthContext) blockUser(w http.ResponseWriter, r *http.Request, username string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.block(w, r, username)
}

// block expects a.mu to be held.
func (a *basicAuthContext) block(w http.ResponseWriter, r *http.Request, username string) {
	log.Warningf("blocked user %s from %s", username, r.RemoteAddr)

	a.blockedUsers[username] = time.Now().Add(blockTimer)

	w.Header().Set("Retry-After", fmt.Sprintf("%d", int64(blockTimer.Seconds())))
}

func (a *basicAuthContext) touchFailureCount(w http.ResponseWriter, r *http.Request, username string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.failureCount[username]++

	if a.failureCount[username] > maxFailures {
		a.block(w, r, username)
		return
	}

	log.Debugf("failure count touch: %s", username)
}
