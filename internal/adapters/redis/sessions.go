package redisad

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"event_hotels/internal/adapters/observability"
	"event_hotels/internal/domain"
)

// Sessions stores login sessions as session:<token> -> user id.
type Sessions struct{ c *redis.Client }

func New(addr, pass string, db int) *Sessions {
	return &Sessions{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func NewWithClient(c *redis.Client) *Sessions { return &Sessions{c: c} }

func sessionKey(token string) string { return "session:" + token }

func (s *Sessions) FindSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	v, err := s.c.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		observability.ObserveSession("redis", "miss")
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		observability.ObserveSession("redis", "error")
		return domain.Session{}, err
	}
	uid, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		observability.ObserveSession("redis", "error")
		return domain.Session{}, errors.New("redis: malformed session value")
	}
	observability.ObserveSession("redis", "hit")
	return domain.Session{UserID: uid, Token: token}, nil
}

// PutSession registers a session; ttl <= 0 keeps it until deleted.
func (s *Sessions) PutSession(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.c.Set(ctx, sessionKey(token), strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *Sessions) DeleteSession(ctx context.Context, token string) error {
	return s.c.Del(ctx, sessionKey(token)).Err()
}

func (s *Sessions) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}
