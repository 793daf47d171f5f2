package utils

import (
	"sync"
	"time"
)

// RateLimiter 令牌桶
type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个新的限流器
// rate: 每秒补充的令牌数
// burst: 桶的容量
func NewRateLimiter(rate int, burst int) *RateLimiter {
	return newRateLimiter(rate, burst, time.Now)
}

func newRateLimiter(rate int, burst int, now func() time.Time) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:       float64(rate),
		capacity:   float64(burst),
		tokens:     float64(burst),
		lastRefill: now(),
		now:        now,
	}
}

// Allow 判断当前请求是否允许通过
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
	rl.lastRefill = now

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// DefaultIdleTTL 桶闲置超过该时长后被回收
const DefaultIdleTTL = 10 * time.Minute

// KeyedRateLimiter 按 key（一般是客户端 IP）各自限流，闲置的桶定期清理
type KeyedRateLimiter struct {
	rate      int
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
	limiters  map[string]*RateLimiter
}

func NewKeyedRateLimiter(rate int, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		rate:      rate,
		burst:     burst,
		idleTTL:   DefaultIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
		limiters:  make(map[string]*RateLimiter),
	}
}

func (k *KeyedRateLimiter) Allow(key string) bool {
	k.mu.Lock()
	now := k.now()
	if now.Sub(k.lastSweep) >= k.idleTTL {
		k.sweep(now)
	}
	rl, ok := k.limiters[key]
	if !ok {
		rl = newRateLimiter(k.rate, k.burst, k.now)
		k.limiters[key] = rl
	}
	k.mu.Unlock()
	return rl.Allow()
}

// Len 当前持有的桶数
func (k *KeyedRateLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// sweep 调用方持有 k.mu
func (k *KeyedRateLimiter) sweep(now time.Time) {
	for key, rl := range k.limiters {
		rl.mu.Lock()
		idle := now.Sub(rl.lastRefill)
		rl.mu.Unlock()
		if idle >= k.idleTTL {
			delete(k.limiters, key)
		}
	}
	k.lastSweep = now
}
