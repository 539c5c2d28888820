package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scoula/omok-server/internal/directory"
	"github.com/scoula/omok-server/internal/model"
)

// Store is a Redis-backed implementation of the directory interface
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis directory
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis directory with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ directory.Directory = (*Store)(nil)

func (s *Store) Save(ctx context.Context, info directory.Info) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}

	// Pipeline for atomic entry save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, roomKey(info.ID), data, s.cfg.RoomTTL)
	pipe.SAdd(ctx, roomIndexKey(), string(info.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) Get(ctx context.Context, id model.RoomID) (*directory.Info, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var info directory.Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *Store) Delete(ctx context.Context, id model.RoomID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, roomKey(id))
	pipe.SRem(ctx, roomIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) List(ctx context.Context) ([]directory.Info, error) {
	ids, err := s.client.SMembers(ctx, roomIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []directory.Info{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roomKey(model.RoomID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	infos := make([]directory.Info, 0, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Entry expired after its index membership; drop it from the index
			s.client.SRem(ctx, roomIndexKey(), ids[i])
			continue
		}
		var info directory.Info
		if err := json.Unmarshal([]byte(str), &info); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
