package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtify/CourtBookingService/internal/api/handlers"
)

// RateLimiter fixed-window ограничитель частоты запросов на базе redis
// Общий для всех инстансов сервиса: окно живет в redis, а не в памяти процесса
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	logger Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// fixedWindowScript инкрементирует счетчик окна и выставляет TTL при первом запросе
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewRateLimiter создает ограничитель: limit запросов на window с одного клиента
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
		logger: logger,
	}
}

// Middleware отклоняет запросы сверх лимита кодом 429
// При недоступности redis запросы пропускаются (fail-open)
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := rl.incr(r.Context(), rl.prefix+":"+clientKey(r))
		if err != nil {
			rl.logger.Warn("RateLimiter: redis error, passing request through: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(rl.limit) {
			handlers.RespondTooManyRequests(w, "превышен лимит запросов")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	return fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Int64()
}

// clientKey идентифицирует клиента по X-Forwarded-For или адресу соединения
func clientKey(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
