// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/constants"
	"github.com/taibuivan/gamelibrary/internal/platform/respond"
)

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter applies a token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewIPRateLimiter builds a limiter that allows rps requests per second per IP
// with the given burst.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*rateLimitClient),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Run evicts idle clients until ctx is cancelled.
func (limiter *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.evict(constants.RateLimitClientTTL)
		case <-ctx.Done():
			return
		}
	}
}

func (limiter *IPRateLimiter) evict(idle time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	cutoff := limiter.now().Add(-idle)
	for ip, client := range limiter.clients {
		if client.lastSeen.Before(cutoff) {
			delete(limiter.clients, ip)
		}
	}
}

// allow reports whether ip may proceed and, if not, how long until it may.
func (limiter *IPRateLimiter) allow(ip string) (bool, time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.clients[ip]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[ip] = client
	}

	now := limiter.now()
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Middleware rejects clients that exceeded their bucket with 429.
func (limiter *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		allowed, retryAfter := limiter.allow(RealIP(request))
		if !allowed {
			respond.Error(writer, request, apperr.RateLimited(int(math.Ceil(retryAfter.Seconds()))))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
