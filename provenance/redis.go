package provenance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sdk "github.com/lousa-ai/sdk"
)

// RedisOptions configures the Redis connection for a RedisStore.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisStore persists audit trails as Redis lists, one list per note.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	const op = "provenance.NewRedisStore"

	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, sdk.NewConfigurationError(op, fmt.Errorf("parsing Redis URL: %w", err))
	}
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, sdk.NewInternalError(op, fmt.Errorf("connecting to Redis: %w", err))
	}

	return &RedisStore{client: client}, nil
}

func redisKey(noteID, noteVersion string) string {
	return fmt.Sprintf("provenance:%s:%s", noteID, noteVersion)
}

// Append pushes the record onto the tail of the note's trail list.
func (s *RedisStore) Append(ctx context.Context, record *Record) error {
	const op = "provenance.RedisStore.Append"

	data, err := json.Marshal(record)
	if err != nil {
		return sdk.NewInternalError(op, fmt.Errorf("encoding record %s: %w", record.ID, err))
	}

	key := redisKey(record.NoteID, record.NoteVersion)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return sdk.NewInternalError(op, fmt.Errorf("appending to %s: %w", key, err))
	}
	return nil
}

// List reads the note's full trail in append order.
func (s *RedisStore) List(ctx context.Context, noteID, noteVersion string) ([]*Record, error) {
	const op = "provenance.RedisStore.List"

	key := redisKey(noteID, noteVersion)
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, sdk.NewInternalError(op, fmt.Errorf("reading %s: %w", key, err))
	}

	records := make([]*Record, 0, len(raw))
	for i, item := range raw {
		var r Record
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, sdk.NewInternalError(op, fmt.Errorf("decoding record %d of %s: %w", i, key, err))
		}
		records = append(records, &r)
	}
	return records, nil
}

// Head reads the digest of the latest record in the note's trail.
func (s *RedisStore) Head(ctx context.Context, noteID, noteVersion string) (string, error) {
	const op = "provenance.RedisStore.Head"

	key := redisKey(noteID, noteVersion)
	item, err := s.client.LIndex(ctx, key, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", sdk.NewInternalError(op, fmt.Errorf("reading head of %s: %w", key, err))
	}

	var r Record
	if err := json.Unmarshal([]byte(item), &r); err != nil {
		return "", sdk.NewInternalError(op, fmt.Errorf("decoding head of %s: %w", key, err))
	}
	return r.Digest, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
