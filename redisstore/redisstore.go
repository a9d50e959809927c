/*
Package redisstore persists a freqtable snapshot blob behind a single
Redis key. It plays the same role for freqtable that the teacher's
redis_client.go and *_redis.go structures play for gostatix's own
probabilistic structures: a thin adapter over github.com/redis/go-redis/v9
that stores and reloads serialized state, without changing the wire format
itself. The counter's table is never itself Redis-resident — only its
snapshot is.
*/
package redisstore

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnOptions mirrors the teacher's RedisConnOptions: plain Go fields
// passed explicitly by the caller, no environment variables or config
// framework involved.
type ConnOptions struct {
	DB                int
	Network           string
	Address           string
	Username          string
	Password          string
	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	PoolSize          int
	TLSConfig         *tls.Config
}

// NewClient builds a go-redis client from options.
func NewClient(options ConnOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		DB:           options.DB,
		Network:      options.Network,
		Addr:         options.Address,
		Username:     options.Username,
		Password:     options.Password,
		DialTimeout:  options.ConnectionTimeout,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
		PoolSize:     options.PoolSize,
		TLSConfig:    options.TLSConfig,
	})
}

// ParseURI parses a redis:// or rediss:// connection string into
// ConnOptions, the same contract the teacher's ParseRedisURI offers.
func ParseURI(uri string) (*ConnOptions, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("freqtable/redisstore: could not parse redis uri: %w", err)
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("freqtable/redisstore: unsupported uri scheme %q", u.Scheme)
	}
	options, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("freqtable/redisstore: error parsing redis uri: %w", err)
	}
	return &ConnOptions{
		DB:                options.DB,
		Network:           options.Network,
		Address:           options.Addr,
		Username:          options.Username,
		Password:          options.Password,
		ConnectionTimeout: options.DialTimeout,
		ReadTimeout:       options.ReadTimeout,
		WriteTimeout:      options.WriteTimeout,
		PoolSize:          options.PoolSize,
		TLSConfig:         options.TLSConfig,
	}, nil
}

// Save stores snapshot (the byte-identical output of Counter.Snapshot)
// under key.
func Save(ctx context.Context, client *redis.Client, key string, snapshot []byte) error {
	if err := client.Set(ctx, key, snapshot, 0).Err(); err != nil {
		return fmt.Errorf("freqtable/redisstore: saving snapshot under %q: %w", key, err)
	}
	return nil
}

// Load retrieves the snapshot bytes previously stored under key by Save.
func Load(ctx context.Context, client *redis.Client, key string) ([]byte, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("freqtable/redisstore: loading snapshot from %q: %w", key, err)
	}
	return data, nil
}

// Delete removes a previously saved snapshot. Deleting a missing key is
// not an error.
func Delete(ctx context.Context, client *redis.Client, key string) error {
	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("freqtable/redisstore: deleting snapshot %q: %w", key, err)
	}
	return nil
}
