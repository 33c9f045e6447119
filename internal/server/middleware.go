package server

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-formalise/internal/log"
)

const (
	requestIDHeader        = "X-Request-ID"
	maxRequestIDLength     = 64
	rateLimiterVisitorTTL  = 5 * time.Minute
	minimumCleanupInterval = 30 * time.Second
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// ApplyMiddlewares applies middlewares in order, the first one being the
// outermost handler.
func ApplyMiddlewares(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RateLimitConfig configures the per-client token bucket on form posts.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// TrustedProxies lists the networks whose X-Forwarded-For header names
	// the client. Requests from anywhere else are keyed on the peer address.
	TrustedProxies []netip.Prefix
}

// ParseTrustedProxies parses CIDRs such as "10.0.0.0/8". Bare addresses are
// taken as single host networks.
func ParseTrustedProxies(raw []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if addr, err := netip.ParseAddr(part); err == nil {
				prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
				continue
			}
			prefix, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", part, err)
			}
			prefixes = append(prefixes, prefix.Masked())
		}
	}
	return prefixes, nil
}

func (c RateLimitConfig) trusts(remoteAddr string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range c.TrustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Enabled reports whether rate limiting should be enforced.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0 && c.Burst > 0
}

// DefaultRateLimitConfig allows 60 posts a minute with bursts of 10.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 1, Burst: 10}
}

// RequestIDMiddleware makes sure every request carries an ID, taken from the
// X-Request-ID header when valid. The ID is attached to the context logger
// values.
func RequestIDMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := sanitizeRequestID(r.Header.Get(requestIDHeader))
			if requestID == "" {
				requestID = ulid.Make().String()
			}
			ctx := log.CtxWithValues(r.Context(), log.Kv{"request_id": requestID})
			w.Header().Set(requestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sanitizeRequestID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxRequestIDLength {
		return ""
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return ""
		}
	}
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every request, recovers panics and runs each
// request inside a Sentry transaction.
func LoggingMiddleware(logger log.Logger) Middleware {
	if logger == nil {
		logger = log.Noop
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			hub := sentry.GetHubFromContext(ctx)
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
				ctx = sentry.SetHubOnContext(ctx, hub)
			}

			transaction := sentry.StartTransaction(
				ctx,
				fmt.Sprintf("%s %s", r.Method, r.URL.Path),
				sentry.WithOpName("http.server"),
				sentry.ContinueFromRequest(r),
				sentry.WithTransactionSource(sentry.SourceURL),
			)
			defer transaction.Finish()
			r = r.WithContext(transaction.Context())
			hub.Scope().SetRequest(r)

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			reqLogger := logger.WithCtxValues(r.Context()).WithValues(log.Kv{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			defer func() {
				if rec := recover(); rec != nil {
					transaction.Status = sentry.SpanStatusInternalError
					hub.RecoverWithContext(r.Context(), rec)
					reqLogger.Errorf("panic recovered: %v", rec)
					writeJSON(recorder, http.StatusInternalServerError, apiError{Error: "internal server error"})
				}
			}()

			next.ServeHTTP(recorder, r)

			transaction.Status = sentry.HTTPtoSpanStatus(recorder.status)
			reqLogger = reqLogger.WithValues(log.Kv{
				"status":      recorder.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			switch {
			case recorder.status >= 500:
				reqLogger.Errorf("request completed")
			case recorder.status >= 400:
				reqLogger.Warningf("request completed")
			default:
				reqLogger.Debugf("request completed")
			}
		})
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware enforces per-client rate limiting using a token bucket.
func RateLimitMiddleware(cfg RateLimitConfig, logger log.Logger) Middleware {
	if !cfg.Enabled() {
		return func(next http.Handler) http.Handler { return next }
	}
	if logger == nil {
		logger = log.Noop
	}
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/cfg.RequestsPerSecond))))

	var (
		mu          sync.Mutex
		visitors    = make(map[string]*clientLimiter)
		lastCleanup time.Time
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			key := clientKey(r, cfg)

			mu.Lock()
			v, ok := visitors[key]
			if !ok {
				v = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
				visitors[key] = v
			}
			v.lastSeen = now

			if lastCleanup.IsZero() || now.Sub(lastCleanup) > minimumCleanupInterval {
				for k, visitor := range visitors {
					if now.Sub(visitor.lastSeen) > rateLimiterVisitorTTL {
						delete(visitors, k)
					}
				}
				lastCleanup = now
			}
			mu.Unlock()

			if !v.limiter.AllowN(now, 1) {
				logger.WithCtxValues(r.Context()).WithValues(log.Kv{"client": key, "path": r.URL.Path}).Warningf("rate limit exceeded")
				w.Header().Set("Retry-After", retryAfter)
				writeJSON(w, http.StatusTooManyRequests, apiError{Error: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the client of r. X-Forwarded-For is only read when the
// peer is a trusted proxy.
func clientKey(r *http.Request, cfg RateLimitConfig) string {
	if !cfg.trusts(r.RemoteAddr) {
		return peerHost(r)
	}
	if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			xff = xff[:idx]
		}
		if ip := strings.TrimSpace(xff); ip != "" {
			return ip
		}
	}
	return peerHost(r)
}

func peerHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
