package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a client bucket survives without requests.
const DefaultIdleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP. Clients are keyed on the
// connection's peer address; X-Forwarded-For is only consulted when the peer
// is a trusted proxy.
type RateLimiter struct {
	bucket    map[string]*visitor
	rate      rate.Limit
	burstSize int
	trusted   []netip.Prefix
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
	log       logrus.FieldLogger
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithTrustedProxies lists the proxies whose X-Forwarded-For header is
// believed.
func WithTrustedProxies(prefixes []netip.Prefix) RateLimiterOption {
	return func(l *RateLimiter) {
		l.trusted = append([]netip.Prefix(nil), prefixes...)
	}
}

// WithIdleTTL sets how long an unused bucket is kept.
func WithIdleTTL(d time.Duration) RateLimiterOption {
	return func(l *RateLimiter) {
		if d > 0 {
			l.idleTTL = d
		}
	}
}

// NewRateLimiter allows reqRate requests per second per client with the
// given burst.
func NewRateLimiter(reqRate rate.Limit, burstSize int, log logrus.FieldLogger, opts ...RateLimiterOption) *RateLimiter {
	l := &RateLimiter{
		bucket:    make(map[string]*visitor),
		rate:      reqRate,
		burstSize: burstSize,
		idleTTL:   DefaultIdleTTL,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

// LimiterFor returns the bucket of a client, creating it on first use.
// Buckets idle for longer than the TTL are dropped along the way.
func (l *RateLimiter) LimiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		for k, v := range l.bucket {
			if now.Sub(v.seen) >= l.idleTTL {
				delete(l.bucket, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.bucket[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rate, l.burstSize)}
		l.bucket[ip] = v
	}
	v.seen = now
	return v.lim
}

// Allow takes a token from the bucket of the client behind r and logs when
// none is left.
func (l *RateLimiter) Allow(r *http.Request) bool {
	ip := l.ClientIP(r)
	if l.LimiterFor(ip).Allow() {
		return true
	}
	l.log.WithFields(logrus.Fields{
		"request_id": GetRequestID(r.Context()),
		"ip":         ip,
	}).Warn("too many requests")
	return false
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the address a request is accounted to. Behind trusted
// proxies it is the rightmost X-Forwarded-For hop that is not itself a
// trusted proxy.
func (l *RateLimiter) ClientIP(r *http.Request) string {
	peer := clientIP(r)
	if !l.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !l.isTrusted(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

func (l *RateLimiter) isTrusted(ip string) bool {
	if len(l.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP is the peer address of the connection.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
