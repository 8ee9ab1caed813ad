package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
)

// Limiter decide se mais uma requisição da chave cabe na janela.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// --------------------------------------------------
// Redis (janela fixa, compartilhada entre instâncias)
// --------------------------------------------------

type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(
		ctx,
		l.rdb,
		[]string{l.prefix + ":" + key},
		l.window.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return res <= int64(l.limit), nil
}

// --------------------------------------------------
// Memória (uma instância só)
// --------------------------------------------------

// memoryIdleTTL: chave sem requisição há mais tempo que isso já teria o
// balde cheio de novo, então pode sair do mapa.
const memoryIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type MemoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &MemoryLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		idleTTL:   memoryIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1), nil
}

// sweep remove as chaves ociosas. Chamar com l.mu travado.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// --------------------------------------------------
// Middleware
// --------------------------------------------------

// RateLimit limita por IP. Com failOpen, erro no limiter deixa passar.
func RateLimit(limiter Limiter, log *zap.Logger, failOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		ok, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			log.Warn("rate limiter error", zap.String("ip", ip), zap.Error(err))
			if failOpen {
				c.Next()
				return
			}
			httperr.Abort(c, http.StatusServiceUnavailable, "rate_limiter_unavailable", "Tente novamente em instantes.")
			return
		}

		if !ok {
			log.Warn("rate limit exceeded", zap.String("ip", ip))
			httperr.Abort(c, http.StatusTooManyRequests, "rate_limited", "Muitas requisições. Tente novamente mais tarde.")
			return
		}

		c.Next()
	}
}
