package cmd

import (
	"context"
	"fmt"

	"cinema-catalog/internal/data/repository"
	"cinema-catalog/internal/usecase"
	"cinema-catalog/pkg/database"
	"cinema-catalog/pkg/events"
	"cinema-catalog/pkg/lock"
	"cinema-catalog/pkg/metrics"
	"cinema-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Runtime holds the process-wide connections shared by the API server and
// the catalogctl commands.
type Runtime struct {
	DB    database.PgxIface
	Repo  *repository.Repository
	Infra usecase.Infra

	closers []func()
}

// Bootstrap connects to Postgres and, when configured, Redis and the broker.
func Bootstrap(ctx context.Context, config *utils.Config, logger *zap.Logger) (*Runtime, error) {
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("Database connected successfully")

	rt := &Runtime{
		DB:      db,
		Repo:    repository.NewRepository(db, logger),
		closers: []func(){db.Close},
		Infra: usecase.Infra{
			Locker:    lock.Local{},
			Publisher: events.NewPublisher(config.Broker, logger),
			Metrics:   metrics.New(),
		},
	}

	if config.Redis.Addr != "" {
		client, err := lock.NewRedisClient(ctx, config.Redis)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		rt.Infra.Locker = lock.NewRedis(client)
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		logger.Info("Redis reconcile lock enabled", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Info("REDIS_ADDR not set, reconcile lock is process-local")
	}

	if config.Broker.URL == "" {
		logger.Info("AMQP_URL not set, lifecycle events are dropped")
	}

	return rt, nil
}

func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}
