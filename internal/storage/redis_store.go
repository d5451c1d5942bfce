package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"outreach-scout/internal/model"

	"github.com/redis/go-redis/v9"
)

const draftPrefix = "outreach:draft:"

// RedisStore keeps drafted outreach texts between runs. Keys are scoped by
// drafting strategy so switching strategies never serves the other one's texts.
type RedisStore struct {
	rdb      *redis.Client
	strategy string
}

func NewRedisStore(rdb *redis.Client, strategy string) *RedisStore {
	return &RedisStore{rdb: rdb, strategy: strategy}
}

func draftKey(strategy, forum, id string) string {
	return fmt.Sprintf("%s%s:%s:%s", draftPrefix, strategy, forum, id)
}

// draftPattern matches every stored draft, across strategies.
func draftPattern() string {
	return draftPrefix + "*"
}

// GetDraft returns the stored responses for a post, if any.
func (s *RedisStore) GetDraft(ctx context.Context, forum, id string) (model.Responses, bool, error) {
	b, err := s.rdb.Get(ctx, draftKey(s.strategy, forum, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Responses{}, false, nil
	}
	if err != nil {
		return model.Responses{}, false, err
	}
	var r model.Responses
	if err := json.Unmarshal(b, &r); err != nil {
		return model.Responses{}, false, err
	}
	return r, true, nil
}

// SetDraft stores responses for a post. A non-positive ttl keeps the key forever.
func (s *RedisStore) SetDraft(ctx context.Context, forum, id string, r model.Responses, ttl time.Duration) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, draftKey(s.strategy, forum, id), b, ttl).Err()
}

// ForgetDraft drops a stored draft so the next run drafts it again.
func (s *RedisStore) ForgetDraft(ctx context.Context, forum, id string) error {
	return s.rdb.Del(ctx, draftKey(s.strategy, forum, id)).Err()
}

// CountDrafts returns how many drafts are stored, across strategies.
func (s *RedisStore) CountDrafts(ctx context.Context) (int64, error) {
	var n int64
	iter := s.rdb.Scan(ctx, 0, draftPattern(), 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
