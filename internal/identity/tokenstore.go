package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore issues and consumes single-use password-reset tokens.
//
// Expiry and single-use are properties of the store itself: Consume is atomic,
// so under concurrent consumption of the same token exactly one caller wins
// and every other caller observes ErrResetTokenInvalid.
type TokenStore interface {
	// Issue creates an opaque random token mapped to userID for ttl.
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// Consume returns the userID for token and deletes it in the same step.
	Consume(ctx context.Context, token string) (string, error)
}

var ErrResetTokenInvalid = errors.New("reset token invalid or expired")

const resetKeyPrefix = "pwreset:"

/* ===================== REDIS ===================== */

// RedisTokenStore keeps reset tokens in redis with a TTL. Redis enforces
// expiry; GETDEL enforces single use.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be > 0")
	}
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, resetKeyPrefix+token, userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisTokenStore) Consume(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrResetTokenInvalid
	}
	userID, err := s.rdb.GetDel(ctx, resetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrResetTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

/* ===================== MEMORY ===================== */

// MemoryTokenStore is a mutex-guarded in-process store for tests and
// redis-less local runs. Expired entries are purged on touch.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryResetEntry
	clock   func() time.Time
}

type memoryResetEntry struct {
	userID    string
	expiresAt time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		entries: make(map[string]memoryResetEntry),
		clock:   time.Now,
	}
}

func (s *MemoryTokenStore) Issue(_ context.Context, userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be > 0")
	}
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryResetEntry{userID: userID, expiresAt: s.clock().Add(ttl)}
	return token, nil
}

func (s *MemoryTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return "", ErrResetTokenInvalid
	}
	// Delete before the expiry check so a stale entry cannot be retried.
	delete(s.entries, token)
	if s.clock().After(e.expiresAt) {
		return "", ErrResetTokenInvalid
	}
	return e.userID, nil
}
