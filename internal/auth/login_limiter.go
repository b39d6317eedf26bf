package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const loginKeyPrefix = "helpdesk:login:"

// AttemptCounter is the subset of the Redis client the limiter uses.
type AttemptCounter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginLimiter caps failed login attempts per username in a fixed window. It
// fails open: a missing or unreachable Redis never blocks a login.
type LoginLimiter struct {
	counter     AttemptCounter
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter builds a limiter. A nil client or non-positive
// maxAttempts disables limiting.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	var counter AttemptCounter
	if client != nil {
		counter = client
	}
	return NewLoginLimiterWithCounter(counter, maxAttempts, window, logger)
}

// NewLoginLimiterWithCounter builds a limiter over any attempt counter.
func NewLoginLimiterWithCounter(counter AttemptCounter, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if window <= 0 {
		window = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginLimiter{counter: counter, maxAttempts: maxAttempts, window: window, logger: logger}
}

func (l *LoginLimiter) enabled() bool {
	return l != nil && l.counter != nil && l.maxAttempts > 0
}

func loginKey(username string) string {
	return loginKeyPrefix + strings.ToLower(username)
}

// Check fails TooManyRequests once the username has used up its attempts.
func (l *LoginLimiter) Check(ctx context.Context, username string) error {
	if !l.enabled() {
		return nil
	}
	count, err := l.counter.Get(ctx, loginKey(username)).Int()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return nil
	}
	if count >= l.maxAttempts {
		return apperrors.NewTooManyRequests("too many failed login attempts, try again later")
	}
	return nil
}

// RecordFailure counts a failed attempt, starting the window on the first one.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	if !l.enabled() {
		return
	}
	key := loginKey(username)
	attempts, err := l.counter.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("failed to record login failure", zap.Error(err))
		return
	}
	// NX keeps the window anchored at the first failure.
	if err := l.counter.ExpireNX(ctx, key, l.window).Err(); err != nil {
		l.logger.Warn("failed to set login window", zap.Error(err))
	}
	if attempts == int64(l.maxAttempts) {
		l.logger.Warn("login attempts exhausted", zap.String("username", username))
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if !l.enabled() {
		return
	}
	if err := l.counter.Del(ctx, loginKey(username)).Err(); err != nil {
		l.logger.Warn("failed to reset login attempts", zap.Error(err))
	}
}
