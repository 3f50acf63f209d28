package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"quiz/internal/pkg/quiz"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key the redis store touches.
const DefaultRedisPrefix = "quiz"

// RedisStore keeps each record in a hash, with a sorted set of ids for ordering
// and a counter for id assignment.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// OpenRedisStore connects using a redis:// URL.
func OpenRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url failed")
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "ping redis failed")
	}
	return NewRedisStore(client, DefaultRedisPrefix), nil
}

// NewRedisStore wraps an existing client. Close closes the client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) idsKey() string {
	return s.prefix + ":ids"
}

func (s *RedisStore) seqKey() string {
	return s.prefix + ":next_id"
}

func (s *RedisStore) recordKey(id int64) string {
	return fmt.Sprintf("%s:record:%d", s.prefix, id)
}

func (s *RedisStore) FindAll(ctx context.Context) ([]quiz.Record, error) {
	members, err := s.client.ZRange(ctx, s.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list quiz ids failed")
	}
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(members))
	ids := make([]int64, len(members))
	for i, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse quiz id %q failed", m)
		}
		ids[i] = id
		cmds[i] = pipe.HGetAll(ctx, s.recordKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Wrap(err, "load quizzes failed")
	}
	out := make([]quiz.Record, 0, len(members))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// deleted between ZRANGE and HGETALL
			continue
		}
		out = append(out, quiz.Record{ID: ids[i], Fields: quiz.Fields{
			Question: fields["question"],
			Answer:   fields["answer"],
		}})
	}
	return out, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id int64) (quiz.Record, error) {
	fields, err := s.client.HGetAll(ctx, s.recordKey(id)).Result()
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "get quiz failed")
	}
	if len(fields) == 0 {
		return quiz.Record{}, &quiz.NotFoundError{ID: id}
	}
	return quiz.Record{ID: id, Fields: quiz.Fields{
		Question: fields["question"],
		Answer:   fields["answer"],
	}}, nil
}

func (s *RedisStore) Create(ctx context.Context, fields quiz.Fields) (quiz.Record, error) {
	if err := quiz.Check(fields); err != nil {
		return quiz.Record{}, err
	}
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "allocate quiz id failed")
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.recordKey(id), "question", fields.Question, "answer", fields.Answer)
		pipe.ZAdd(ctx, s.idsKey(), redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "insert quiz failed")
	}
	return quiz.Record{ID: id, Fields: fields}, nil
}

func (s *RedisStore) Update(ctx context.Context, record quiz.Record) (quiz.Record, error) {
	if err := quiz.Check(record.Fields); err != nil {
		return quiz.Record{}, err
	}
	key := s.recordKey(record.ID)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return errors.Wrap(err, "lookup quiz failed")
		}
		if n == 0 {
			return &quiz.NotFoundError{ID: record.ID}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "question", record.Question, "answer", record.Answer)
			return nil
		})
		return errors.Wrap(err, "update quiz failed")
	}, key)
	if err != nil {
		return quiz.Record{}, err
	}
	return record, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id int64) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.recordKey(id))
		pipe.ZRem(ctx, s.idsKey(), strconv.FormatInt(id, 10))
		return nil
	})
	return errors.Wrap(err, "delete quiz failed")
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
