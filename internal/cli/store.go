package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/fxforge/pkg/adapters/file"
	"github.com/aretw0/fxforge/pkg/adapters/memory"
	"github.com/aretw0/fxforge/pkg/adapters/redis"
	"github.com/aretw0/fxforge/pkg/adapters/s3"
	"github.com/aretw0/fxforge/pkg/adapters/sqlite"
	"github.com/aretw0/fxforge/pkg/ports"
)

// Store backends accepted by --store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreS3     = "s3"
)

// ErrUnknownStore is returned for an unsupported --store value.
var ErrUnknownStore = errors.New("unknown store")

// StoreOptions selects and configures the project store.
type StoreOptions struct {
	Kind string

	Dir string // file

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SQLitePath string

	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Prefix   string
}

// Backend is an opened store plus the resources that go with it.
type Backend struct {
	Store  ports.ProjectStore
	Locker ports.DistributedLocker // nil unless the backend supports it
	close  func() error
}

// Close releases connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenStore builds the project store described by opts.
func OpenStore(ctx context.Context, opts StoreOptions) (*Backend, error) {
	switch strings.ToLower(opts.Kind) {
	case StoreMemory:
		return &Backend{Store: memory.NewStore()}, nil

	case "", StoreFile:
		return &Backend{Store: file.New(opts.Dir)}, nil

	case StoreRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New("redis store requires --redis-addr")
		}
		store := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		return &Backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), ""),
			close:  store.Close,
		}, nil

	case StoreSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = "fxforge.db"
		}
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &Backend{Store: store, close: store.Close}, nil

	case StoreS3:
		if opts.S3Bucket == "" {
			return nil, errors.New("s3 store requires --s3-bucket")
		}
		store, err := s3.New(ctx, s3.Config{
			Region:    opts.S3Region,
			Bucket:    opts.S3Bucket,
			Prefix:    opts.S3Prefix,
			Endpoint:  opts.S3Endpoint,
			PathStyle: opts.S3Endpoint != "",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 store: %w", err)
		}
		return &Backend{Store: store}, nil

	default:
		return nil, fmt.Errorf("%w: %q (want memory, file, redis, sqlite or s3)", ErrUnknownStore, opts.Kind)
	}
}
