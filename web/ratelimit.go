/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package web

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitorIdleExpiry is how long a client may be silent before its limiter
// state is dropped.
const visitorIdleExpiry = 3 * time.Minute

// sweepInterval bounds how often allow scans for expired visitors.
const sweepInterval = time.Minute

// clientLimiter keeps one token bucket per client address. Idle visitor
// state is swept during allow, so the limiter owns no goroutine or ticker.
type clientLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       rate.Limit
	burst     int
	nextSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(requestsPerSecond float64, burst int) *clientLimiter {
	return &clientLimiter{
		visitors:  make(map[string]*visitor),
		rps:       rate.Limit(requestsPerSecond),
		burst:     burst,
		nextSweep: time.Now().Add(sweepInterval),
	}
}

func (l *clientLimiter) allow(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	now := time.Now()

	l.mu.Lock()
	if now.After(l.nextSweep) {
		l.sweep(now)
		l.nextSweep = now.Add(sweepInterval)
	}
	v, ok := l.visitors[host]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[host] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.Allow()
}

// sweep drops visitors idle past expiry. The caller holds mu.
func (l *clientLimiter) sweep(now time.Time) {
	cutoff := now.Add(-visitorIdleExpiry)
	for host, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, host)
		}
	}
}

func (l *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(r.RemoteAddr) {
			slog.Debug("rate limited", "client", r.RemoteAddr)
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
