package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// ipRateLimiter mantiene un limiter por IP. Para una hoja de flujo de un
// solo paciente el tráfico esperado es mínimo; esto solo frena clientes
// rotos que reintentan en loop.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (i *ipRateLimiter) limiterFor(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	l, ok := i.limiters[ip]
	if !ok {
		l = rate.NewLimiter(i.rate, i.burst)
		i.limiters[ip] = l
	}
	return l
}

// RateLimit limita requests por IP. Depende de chi middleware.RealIP para
// que RemoteAddr traiga la IP real detrás de un proxy.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newIPRateLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.limiterFor(r.RemoteAddr).Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
