package middleware

import (
	"net/http"
	"sync"
	"time"

	"smpid/pkg/logger"
)

// SchoolExtractor pulls the school code a request acts for. The booking form
// sends it in the X-School-Code header.
type SchoolExtractor func(r *http.Request) string

// SchoolRateLimiter throttles submissions per school code within a sliding
// window. Requests without a school code are not limited.
type SchoolRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor SchoolExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewSchoolRateLimiter(limit int, window time.Duration, extractor SchoolExtractor, log *logger.Logger) *SchoolRateLimiter {
	limiter := &SchoolRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *SchoolRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for code, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, code)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *SchoolRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *SchoolRateLimiter) Allow(code string) bool {
	if code == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[code][:0:0]
	for _, ts := range rl.requests[code] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[code] = valid
		return false
	}

	rl.requests[code] = append(valid, now)
	return true
}

func SchoolRateLimit(limiter *SchoolRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := ""
			if limiter.extractor != nil {
				code = limiter.extractor(r)
			} else {
				code = DefaultSchoolExtractor(r)
			}

			if code == "" || limiter.Allow(code) {
				next.ServeHTTP(w, r)
				return
			}

			limiter.log.Warn("Rate limit exceeded",
				"request_id", RequestID(r.Context()),
				"school_code", code,
				"path", r.URL.Path,
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
		})
	}
}

func DefaultSchoolExtractor(r *http.Request) string {
	return r.Header.Get("X-School-Code")
}
