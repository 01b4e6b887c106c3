package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/drivequiz/internal/common"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "drivequiz:credentials:"

var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps the token in a single Redis string without a TTL.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: redisKeyPrefix + common.CredentialKey}
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read credential: %w", err)
	}
	return v, v != "", nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearIf(ctx context.Context, token string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, s.client, []string{s.key}, token).Int64()
	if err != nil {
		return false, fmt.Errorf("clear credential: %w", err)
	}
	return n > 0, nil
}
