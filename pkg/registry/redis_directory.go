package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

const DefaultRedisKeyPrefix = "nft:standard:"

type RedisDirectoryOptions struct {
	// KeyPrefix defaults to DefaultRedisKeyPrefix.
	KeyPrefix string
	// TTL expires recorded entries; zero keeps them.
	TTL time.Duration
}

// RedisDirectory shares contract standards between processes.
type RedisDirectory struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
}

var _ Directory = (*RedisDirectory)(nil)

func NewRedisDirectory(client redis.Cmdable, options RedisDirectoryOptions) (*RedisDirectory, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	prefix := options.KeyPrefix
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultRedisKeyPrefix
	}
	if options.TTL < 0 {
		return nil, fmt.Errorf("TTL must not be negative")
	}
	return &RedisDirectory{client: client, keyPrefix: prefix, ttl: options.TTL}, nil
}

func (directory *RedisDirectory) Lookup(ctx context.Context, contractID string) (nft.StandardID, bool, error) {
	value, err := directory.client.Get(ctx, directory.key(contractID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	id := nft.StandardID(value)
	if err := id.Validate(); err != nil {
		return "", false, fmt.Errorf("stored standard for %s: %w", contractID, err)
	}
	return id, true, nil
}

func (directory *RedisDirectory) Record(ctx context.Context, contractID string, id nft.StandardID) error {
	if strings.TrimSpace(contractID) == "" {
		return fmt.Errorf("contract ID is required")
	}
	if err := id.Validate(); err != nil {
		return err
	}
	return directory.client.Set(ctx, directory.key(contractID), string(id), directory.ttl).Err()
}

func (directory *RedisDirectory) key(contractID string) string {
	return directory.keyPrefix + strings.TrimSpace(contractID)
}
