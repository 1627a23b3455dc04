package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session in a Redis hash, for headless setups
// where several workers share one authenticated identity.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "linkview:session",
	}
}

func (r *RedisStore) Load(ctx context.Context) (Session, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNoSession
		}

		return Session{}, err
	}

	if fields["token"] == "" {
		return Session{}, ErrNoSession
	}

	return Session{Token: fields["token"], Name: fields["name"]}, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	return r.client.HSet(ctx, r.key, "token", s.Token, "name", s.Name).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
