package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/binary"
	fsblob "github.com/tendant/simple-cms/pkg/simplecms/binary/fs"
	memoryblob "github.com/tendant/simple-cms/pkg/simplecms/binary/memory"
	s3blob "github.com/tendant/simple-cms/pkg/simplecms/binary/s3"
	"github.com/tendant/simple-cms/pkg/simplecms/core"
	"github.com/tendant/simple-cms/pkg/simplecms/event"
	"github.com/tendant/simple-cms/pkg/simplecms/seed"
	"github.com/tendant/simple-cms/pkg/simplecms/storage"
	memorystore "github.com/tendant/simple-cms/pkg/simplecms/storage/memory"
	"github.com/tendant/simple-cms/pkg/simplecms/storage/postgres"
)

// Runtime is a repository built from a Config.
type Runtime struct {
	// Repository is the event decorated repository. Use it for every call
	// that should notify listeners.
	Repository simplecms.Repository
	Core       *core.Repository
	Bus        *event.Bus
	Binary     *binary.Service

	config *Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// Build creates the store, search engine, binary storage and event bus
// described by c and wires them into a repository.
func (c *Config) Build(ctx context.Context, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rt := &Runtime{config: c, logger: logger}

	store, err := rt.buildStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build store: %w", err)
	}
	blobs, err := c.buildBlobStore(ctx)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to build binary storage: %w", err)
	}
	var binaryOptions []binary.Option
	binaryOptions = append(binaryOptions, binary.WithLogger(logger))
	if target, _ := c.storage(); target.Prefix != "" {
		binaryOptions = append(binaryOptions, binary.WithKeyPrefix(target.Prefix))
	}
	rt.Binary = binary.NewService(blobs, binaryOptions...)

	options := []core.Option{
		core.WithStore(store),
		core.WithBinaryService(rt.Binary),
		core.WithLogger(logger),
		core.WithDefaultLanguage(c.DefaultLanguage),
		core.WithAnonymousLogin(c.AnonymousLogin),
	}
	if c.searchEngine() == "sql" {
		options = append(options, core.WithSearchEngine(postgres.NewEngine(rt.pool)))
	}
	rt.Core, err = core.New(options...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	rt.Bus = event.NewBus()
	if c.EnableEventLogging {
		rt.Bus.AddSubscriber(event.NewLoggingSubscriber(logger))
	}
	rt.Repository = event.Decorate(rt.Core, rt.Bus)

	logger.Info("repository ready",
		"database", c.DatabaseType(),
		"search_engine", c.searchEngine(),
		"storage", c.StorageURL)
	return rt, nil
}

func (rt *Runtime) buildStore(ctx context.Context) (storage.Store, error) {
	c := rt.config
	if c.DatabaseType() != "postgres" {
		return memorystore.New(), nil
	}

	cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema := c.DBSchema; schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, "SET search_path TO "+pgx.Identifier{schema}.Sanitize())
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	rt.pool = pool
	return postgres.New(pool), nil
}

func (c *Config) buildBlobStore(ctx context.Context) (binary.BlobStore, error) {
	target, err := c.storage()
	if err != nil {
		return nil, err
	}
	switch target.Type {
	case "fs":
		return fsblob.New(fsblob.Config{BaseDir: target.Path})
	case "s3":
		return s3blob.New(ctx, s3blob.Config{
			Region:                 target.Region,
			Bucket:                 target.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               target.Endpoint,
			UsePathStyle:           target.PathStyle,
			PresignDuration:        c.S3.PresignDuration,
			CreateBucketIfNotExist: c.S3.CreateBucket,
		})
	default:
		return memoryblob.New(), nil
	}
}

// Seed applies the install seed and the configured seed file. Both are
// idempotent.
func (rt *Runtime) Seed(ctx context.Context) error {
	applier := seed.NewApplier(rt.Repository, rt.logger)
	if rt.config.Install {
		install, err := seed.Install()
		if err != nil {
			return err
		}
		if _, err := applier.Apply(ctx, install); err != nil {
			return err
		}
	}
	if rt.config.SeedFile != "" {
		f, err := seed.LoadFile(rt.config.SeedFile)
		if err != nil {
			return err
		}
		if _, err := applier.Apply(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database pool.
func (rt *Runtime) Close() {
	if rt.pool != nil {
		rt.pool.Close()
	}
}
