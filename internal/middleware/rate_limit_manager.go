package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitManager manages rate limiters with lifecycle control
type RateLimitManager struct {
	visitors        map[string]*visitor
	visitorsMu      sync.RWMutex
	loginLimiters   map[string]*visitor
	loginLimitersMu sync.RWMutex
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
}

// NewRateLimitManager creates a new rate limit manager with context-based lifecycle
func NewRateLimitManager(ctx context.Context) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		visitors:      make(map[string]*visitor),
		loginLimiters: make(map[string]*visitor),
		ctx:           managerCtx,
		cancel:        cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// GetVisitor retrieves or creates a rate limiter for the given IP
func (m *RateLimitManager) GetVisitor(ip string, requestsPerWindow int, windowSeconds int, burst int) *rate.Limiter {
	if burst < requestsPerWindow {
		burst = requestsPerWindow
	}
	return getLimiter(m.visitors, &m.visitorsMu, ip, requestsPerWindow, windowSeconds, burst)
}

// GetLoginLimiter retrieves or creates the limiter guarding login form submissions
func (m *RateLimitManager) GetLoginLimiter(ip string, requestsPerWindow int, windowSeconds int) *rate.Limiter {
	return getLimiter(m.loginLimiters, &m.loginLimitersMu, ip, requestsPerWindow, windowSeconds, requestsPerWindow)
}

func getLimiter(limiters map[string]*visitor, mu *sync.RWMutex, ip string, requestsPerWindow, windowSeconds, burst int) *rate.Limiter {
	if requestsPerWindow <= 0 {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	v, exists := limiters[ip]
	if !exists {
		if windowSeconds <= 0 {
			windowSeconds = 60
		}

		limitPerSecond := float64(requestsPerWindow) / float64(windowSeconds)
		limit := rate.Limit(limitPerSecond)
		if limitPerSecond <= 0 {
			limit = rate.Inf
		}

		limiter := rate.NewLimiter(limit, burst)
		limiters[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupLoop periodically removes inactive rate limiters
func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup(time.Now())
		}
	}
}

// cleanup removes inactive rate limiters
func (m *RateLimitManager) cleanup(now time.Time) {
	m.visitorsMu.Lock()
	for ip, v := range m.visitors {
		if now.Sub(v.lastSeen) > 3*time.Minute {
			delete(m.visitors, ip)
		}
	}
	m.visitorsMu.Unlock()

	m.loginLimitersMu.Lock()
	for ip, v := range m.loginLimiters {
		if now.Sub(v.lastSeen) > 10*time.Minute {
			delete(m.loginLimiters, ip)
		}
	}
	m.loginLimitersMu.Unlock()
}

// Shutdown stops the cleanup goroutine and waits for it to finish
func (m *RateLimitManager) Shutdown() error {
	m.cancel()
	m.wg.Wait()
	return nil
}
