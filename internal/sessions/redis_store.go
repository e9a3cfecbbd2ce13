package sessions

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	apperrors "task-manager.com/task-manager/internal/errors"
)

type RedisStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisStore(client rueidis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisStore) revokedKey(tokenID string) string {
	return r.prefix + ":revoked:" + tokenID
}

func (r *RedisStore) resetKey(token string) string {
	return r.prefix + ":reset:" + token
}

func seconds(ttl time.Duration) int64 {
	s := int64((ttl + time.Second - 1) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

func (r *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cmd := r.client.B().Set().Key(r.revokedKey(tokenID)).Value("1").ExSeconds(seconds(ttl)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	cmd := r.client.B().Exists().Key(r.revokedKey(tokenID)).Build()
	n, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisStore) PutResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	cmd := r.client.B().Set().Key(r.resetKey(token)).Value(userID).ExSeconds(seconds(ttl)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	cmd := r.client.B().Getdel().Key(r.resetKey(token)).Build()
	userID, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", apperrors.ErrInvalidResetToken
		}
		return "", err
	}
	return userID, nil
}
