package cmd

import (
	"context"
	"fmt"
	"io"

	"storefront/cache"
	"storefront/common/logger"
	"storefront/config"
	"storefront/database"
	"storefront/events"
	awspkg "storefront/pkg/aws"
	"storefront/repository"
	"storefront/services"
	"storefront/session"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "storefront"

// app owns the process-wide infrastructure shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  repository.Store
	db     *gorm.DB
	redis  *redis.Client
	aws    *sdkaws.Config

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	if cfg.NeedsAWS() {
		awsCfg, err := awspkg.LoadAWSConfig(ctx, awspkg.Options{Region: cfg.AWS.Region, Endpoint: cfg.AWS.Endpoint})
		if err != nil {
			return nil, err
		}
		a.aws = &awsCfg

		if cfg.AWS.UseSecrets {
			if err := cfg.ApplyDBSecrets(ctx, awspkg.NewSecretsClient(awsCfg)); err != nil {
				return nil, err
			}
		}
	}

	var sink io.Writer
	var sinkErr error
	if cfg.CloudWatch.Enabled && a.aws != nil {
		sink, sinkErr = awspkg.NewCloudWatchLogsClient(ctx, *a.aws, cfg.CloudWatch.LogGroup, serviceName)
		if sinkErr != nil {
			sink = nil
		}
	}
	a.logger, err = logger.New(cfg.Env, sink)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		_ = a.logger.Sync()
		return nil
	})
	if sinkErr != nil {
		a.logger.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(sinkErr))
	}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		a.store = repository.NewMemoryStore()
	default:
		a.db, err = database.Open(ctx, cfg.Store.Driver, cfg.DB, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(a.db) })
		a.store = repository.NewGormStore(a.db)
	}

	if cfg.NeedsRedis() {
		a.redis, err = database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, a.redis.Close)
	}

	a.logger.Info("infrastructure ready",
		zap.String("env", cfg.Env),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("redis", a.redis != nil),
		zap.Bool("aws", a.aws != nil),
	)
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("shutdown step failed", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *app) metrics() *awspkg.MetricsClient {
	if a.aws == nil {
		return nil
	}
	return awspkg.NewMetricsClient(*a.aws, a.cfg.CloudWatch.Namespace, a.cfg.CloudWatch.Enabled)
}

func (a *app) sessionBackend() session.Backend {
	if a.cfg.Session.Backend == config.SessionBackendRedis {
		return session.NewRedisBackend(a.redis)
	}
	return session.NewMemoryBackend()
}

func (a *app) productCache() services.ProductCache {
	if !a.cfg.Cache.Enabled {
		return nil
	}
	return cache.NewCatalogCache(a.redis, a.cfg.Cache.TTL, a.logger)
}

func (a *app) presigner() services.Presigner {
	if a.aws == nil || a.cfg.AWS.UploadBucket == "" {
		return nil
	}
	return awspkg.NewS3Presigner(*a.aws, a.cfg.AWS.UploadBucket)
}

// publisher fans order events out to every configured transport.
func (a *app) publisher() events.Publisher {
	var out events.Multi
	if len(a.cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic)
		a.closers = append(a.closers, kp.Close)
		out = append(out, kp)
	}
	if a.aws != nil && a.cfg.AWS.OrderTopicARN != "" {
		out = append(out, events.NewSNSPublisher(awspkg.NewSNSClient(*a.aws), a.cfg.AWS.OrderTopicARN))
	}

	switch len(out) {
	case 0:
		a.logger.Info("no event transport configured, order events are dropped")
		return events.Nop{}
	case 1:
		return out[0]
	}
	return out
}

func (a *app) seed(ctx context.Context) error {
	seeded, err := repository.Seed(ctx, a.store, services.HashPassword(a.cfg.Auth.BcryptCost))
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	if seeded {
		a.logger.Info("sample data loaded")
	} else {
		a.logger.Info("store already populated, skipping seed")
	}
	return nil
}
