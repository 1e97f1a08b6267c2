package api

import "sync"

// TrialLimiter grants unauthenticated callers a fixed number of trial
// requests, tracked per client IP in memory. Counts reset on restart;
// trial mode is a convenience for the web onboarding flow, not a quota
// system.
type TrialLimiter struct {
	mu        sync.Mutex
	remaining map[string]int
	max       int
}

// NewTrialLimiter creates a limiter granting max requests per client.
// A max of zero disables trial mode entirely.
func NewTrialLimiter(max int) *TrialLimiter {
	return &TrialLimiter{
		remaining: make(map[string]int),
		max:       max,
	}
}

// Enabled reports whether trial mode is on at all
func (l *TrialLimiter) Enabled() bool {
	return l != nil && l.max > 0
}

// Allow consumes one trial request for client and reports how many remain.
// ok is false once the allowance is exhausted.
func (l *TrialLimiter) Allow(client string) (left int, ok bool) {
	if l.max <= 0 {
		return 0, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	n, seen := l.remaining[client]
	if !seen {
		n = l.max
	}
	if n <= 0 {
		return 0, false
	}
	n--
	l.remaining[client] = n
	return n, true
}
