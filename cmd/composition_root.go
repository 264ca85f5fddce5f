package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/holdstore/memory"
	"logistics/internal/adapters/out/holdstore/redisstore"
	"logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	engine     services.StatusEngine

	holds       ports.HoldStore
	publisher   ports.EventPublisher
	redisClient *redis.Client
	producer    *kafka.OrderChangedProducer
}

// NewCompositionRoot picks the hold store and the event publisher from cfg:
// redis and kafka when configured, process memory and the log otherwise.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		engine:     services.NewStatusEngine(),
	}

	if cfg.RedisAddr != "" {
		client, err := redisstore.NewClient(ctx, redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		c.redisClient = client
		c.holds = redisstore.NewStore(client, cfg.HoldTTL)
		logger.Info("Pending transitions are kept in redis", "addr", cfg.RedisAddr)
	} else {
		c.holds = memory.NewStore(cfg.HoldTTL)
		logger.Info("Pending transitions are kept in memory")
	}

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		producer, err := kafka.NewOrderChangedProducer(brokers, cfg.KafkaOrderChangedTopic, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.producer = producer
		c.publisher = producer
	} else {
		c.publisher = kafka.NewLogPublisher(logger)
		logger.Info("KAFKA_HOST is empty, status changes are only logged")
	}

	return c, nil
}

// Close releases the redis client and the kafka producer.
func (c *CompositionRoot) Close() error {
	var errs []error
	if c.producer != nil {
		errs = append(errs, c.producer.Close())
	}
	if c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRequestStatusTransitionCommandHandler() commands.RequestStatusTransitionCommandHandler {
	return commands.NewRequestStatusTransitionCommandHandler(c.orderUoWFactory(), c.holds, c.engine)
}

func (c *CompositionRoot) CreateConfirmDriverDetailsCommandHandler() commands.ConfirmDriverDetailsCommandHandler {
	return commands.NewConfirmDriverDetailsCommandHandler(c.orderUoWFactory(), c.holds, c.engine)
}

func (c *CompositionRoot) CreateDiscardPendingTransitionCommandHandler() commands.DiscardPendingTransitionCommandHandler {
	return commands.NewDiscardPendingTransitionCommandHandler(c.holds)
}

func (c *CompositionRoot) CreateEditRejectionNoteCommandHandler() commands.EditRejectionNoteCommandHandler {
	return commands.NewEditRejectionNoteCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExpirePendingTransitionsCommandHandler() commands.ExpirePendingTransitionsCommandHandler {
	return commands.NewExpirePendingTransitionsCommandHandler(c.holds)
}

func (c *CompositionRoot) CreateRelayOutboxEventsCommandHandler() commands.RelayOutboxEventsCommandHandler {
	return commands.NewRelayOutboxEventsCommandHandler(c.outboxUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(uowOrderReader{factory: c.uowFactory}, c.holds)
}

func (c *CompositionRoot) CreateGetPendingTransitionQueryHandler() queries.GetPendingTransitionQueryHandler {
	return queries.NewGetPendingTransitionQueryHandler(c.holds)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:              c.CreateCreateOrderCommandHandler(),
		RequestTransition:        c.CreateRequestStatusTransitionCommandHandler(),
		ConfirmDriverDetails:     c.CreateConfirmDriverDetailsCommandHandler(),
		DiscardPendingTransition: c.CreateDiscardPendingTransitionCommandHandler(),
		EditRejectionNote:        c.CreateEditRejectionNoteCommandHandler(),
		ListOrders:               c.CreateListOrdersQueryHandler(),
		GetOrderStatus:           c.CreateGetOrderStatusQueryHandler(),
		GetPendingTransition:     c.CreateGetPendingTransitionQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relayCmd, err := commands.NewRelayOutboxEventsCommand(c.cfg.OutboxBatchSize, c.cfg.OutboxMaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("outbox relay settings: %w", err)
	}

	return jobs.NewJobManager(
		jobs.Schedules{
			HoldExpiry:  c.cfg.HoldSweepSchedule,
			OutboxRelay: c.cfg.OutboxRelaySchedule,
		},
		c.CreateExpirePendingTransitionsCommandHandler(),
		c.CreateRelayOutboxEventsCommandHandler(),
		relayCmd,
		c.logger,
	)
}

// uowOrderReader reads an order outside of a transaction.
type uowOrderReader struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (r uowOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.factory.Create().OrderRepository().Get(ctx, id)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
