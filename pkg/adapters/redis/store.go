// Package redis implements ports.StateStore on Redis, for deployments that
// host durable editing sessions outside the local filesystem.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/formaniuktaras/Price20/pkg/codec"
	"github.com/formaniuktaras/Price20/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.StateStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored payloads.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored payloads.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "desceditor:state:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the state to Redis and tracks the key in an index set.
func (s *Store) Save(ctx context.Context, key string, state *domain.EditorState) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	data, err := codec.EncodeState(codec.ExportState(*state, time.Now()))
	if err != nil {
		return fmt.Errorf("serialize state: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(key), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save state to redis: %w", err)
	}
	return nil
}

// Load retrieves the state for a key.
func (s *Store) Load(ctx context.Context, key string) (*domain.EditorState, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("load state from redis: %w", err)
	}

	payload, err := codec.DecodeState(data)
	if err != nil {
		return nil, fmt.Errorf("decode redis payload: %w", err)
	}

	state := domain.Apply(domain.NewEditorState(), domain.ReplaceState{State: payload.ToDomain()})
	return &state, nil
}

// Delete removes the payload and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.SRem(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete state from redis: %w", err)
	}
	return nil
}

// List returns the keys tracked in the index set.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list redis keys: %w", err)
	}
	return keys, nil
}
