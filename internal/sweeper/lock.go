package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker выдает lease на один запуск очистки, чтобы реплики не чистили одновременно.
// Очистка идемпотентна, поэтому lease только экономит работу базы.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// NoopLocker всегда выдает lease (одна реплика или нет Redis)
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context) (bool, error) { return true, nil }
func (NoopLocker) Release(context.Context) error         { return nil }

const DefaultLockKey = "linkgate:sweeper:lease"

// удаляем ключ, только если lease все еще наш
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker - lease на SET NX PX
type RedisLocker struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	owner  string
}

// NewRedisLocker creates a locker; ttl should exceed the sweep timeout.
func NewRedisLocker(client redis.UniversalClient, key string, ttl time.Duration) *RedisLocker {
	if key == "" {
		key = DefaultLockKey
	}
	return &RedisLocker{
		client: client,
		key:    key,
		ttl:    ttl,
		owner:  uuid.NewString(),
	}
}

func (l *RedisLocker) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, l.owner, l.ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.client, []string{l.key}, l.owner).Err()
}
