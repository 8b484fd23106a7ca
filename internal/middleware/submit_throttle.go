package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ==================== SubmitThrottle 提交限流 ====================

// SubmitLimiter 按客户端 IP 的令牌桶
// 每 cooldown 补充一个令牌，最多累积 burst 个
type SubmitLimiter struct {
	cooldown time.Duration
	burst    int

	mu        sync.Mutex
	clients   map[string]*clientEntry
	lastSweep time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// 空闲超过该时长的客户端会被清理
const clientIdleTTL = 10 * time.Minute

func NewSubmitLimiter(cooldown time.Duration, burst int) *SubmitLimiter {
	if cooldown <= 0 {
		cooldown = 2 * time.Second
	}
	if burst <= 0 {
		burst = 1
	}
	return &SubmitLimiter{
		cooldown:  cooldown,
		burst:     burst,
		clients:   make(map[string]*clientEntry),
		lastSweep: time.Now(),
	}
}

// Reserve 尝试消耗一个令牌，失败时返回需等待的时长
func (l *SubmitLimiter) Reserve(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > clientIdleTTL {
		for k, e := range l.clients {
			if now.Sub(e.lastSeen) > clientIdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.clients[key]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(rate.Every(l.cooldown), l.burst)}
		l.clients[key] = entry
	}
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, l.cooldown
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// SubmitThrottle 提交限流中间件，仅作用于写请求
func SubmitThrottle(limiter *SubmitLimiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		ok, wait := limiter.Reserve(c.ClientIP(), time.Now())
		if ok {
			c.Next()
			return
		}

		seconds := int(math.Ceil(wait.Seconds()))
		log.Warn("submit throttled",
			zap.String("client_ip", c.ClientIP()),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("retry_after", wait))

		c.Header("Retry-After", strconv.Itoa(seconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":   "too many submissions",
			"details": "retry after " + strconv.Itoa(seconds) + "s",
		})
	}
}
