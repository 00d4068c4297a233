package ownerlock

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
)

const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

var _ redisClient = (*redis.Client)(nil)

// Redis is a lease lock shared by every instance. The TTL bounds how long a crashed holder blocks the owner.
type Redis struct {
	rdb     redisClient
	ttl     time.Duration
	backoff time.Duration
	log     *logger.Logger
}

func NewRedis(rdb redisClient, ttl time.Duration, baseLog *logger.Logger) *Redis {
	return &Redis{rdb: rdb, ttl: ttl, backoff: 25 * time.Millisecond, log: baseLog.With("component", "ownerlock")}
}

func lockKey(ownerID uint64) string {
	return "lock:cart:" + strconv.FormatUint(ownerID, 10)
}

func (r *Redis) Lock(ctx context.Context, ownerID uint64) (func(), error) {
	key := lockKey(ownerID)
	token := uuid.NewString()

	wait := r.backoff
	for {
		ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(ErrLockTimeout, ctx.Err())
			}
			return nil, err
		}
		if ok {
			return func() { r.unlock(key, token) }, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrLockTimeout, ctx.Err())
		case <-timer.C:
		}
		if wait < 200*time.Millisecond {
			wait *= 2
		}
	}
}

// unlock deletes the key only while it still carries our token, so an expired lease
// taken over by another holder is left alone.
func (r *Redis) unlock(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.rdb.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		r.log.Warn("release owner lock failed", "key", key, "error", err)
	}
}
