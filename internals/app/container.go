package app

import (
	"context"

	"pulsecheck/config"
	"pulsecheck/internals/metrics"
	"pulsecheck/internals/modules/alert"
	"pulsecheck/internals/modules/history"
	"pulsecheck/internals/modules/probe"
	"pulsecheck/internals/modules/schedule"
	"pulsecheck/internals/modules/stats"
	"pulsecheck/pkg/db"
	"pulsecheck/pkg/httpclient"
	"pulsecheck/pkg/mailer"
	"pulsecheck/pkg/rabbitmq"
	"pulsecheck/pkg/redisstore"

	"github.com/go-playground/validator/v10"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Container struct {
	Store        history.Store
	RedisClient  *redisstore.Client
	Logger       *zerolog.Logger
	Orchestrator *schedule.Orchestrator
	AlertSvc     *alert.Service

	historyHandler  *history.Handler
	statsHandler    *stats.Handler
	scheduleHandler *schedule.Handler

	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

func NewContainer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	redisClient, err := redisstore.New(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	// seed the tracked set with the configured defaults
	if err := redisClient.AddTracked(ctx, cfg.Scheduler.DefaultURLs...); err != nil {
		return nil, err
	}

	events := make(chan alert.Event, 500)
	validator := validator.New()

	var amqpConn *amqp.Connection
	var publisher *rabbitmq.Publisher
	var alertPub alert.Publisher
	if cfg.RabbitMQ != nil && cfg.RabbitMQ.Enabled {
		amqpConn, err = rabbitmq.NewConnection(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		if err := rabbitmq.SetupTopology(amqpConn, cfg.RabbitMQ); err != nil {
			return nil, err
		}
		publisher, err = rabbitmq.NewPublisher(amqpConn, cfg.RabbitMQ.ExchangeName, cfg.RabbitMQ.RoutingKey)
		if err != nil {
			return nil, err
		}
		alertPub = publisher
	}

	alertSvc := alert.NewService(
		cfg.Alerts.Workers,
		events,
		mailer.New(cfg.Alerts.SMTP),
		alertPub,
		cfg.Alerts.Recipient,
		logger,
	)

	prober := probe.NewProber(httpclient.New(), cfg.Scheduler.ProbeTimeout, logger)

	orch := schedule.NewOrchestrator(
		ctx,
		prober,
		store,
		redisClient,
		alertSvc,
		cfg.Scheduler.Cadence,
		cfg.Scheduler.Concurrency,
		cfg.Alerts.Enabled,
		logger,
	)

	historySvc := history.NewService(store)
	statsSvc := stats.NewService(store)

	metrics.Init()

	return &Container{
		Store:           store,
		RedisClient:     redisClient,
		Logger:          logger,
		Orchestrator:    orch,
		AlertSvc:        alertSvc,
		historyHandler:  history.NewHandler(historySvc, loc),
		statsHandler:    stats.NewHandler(statsSvc),
		scheduleHandler: schedule.NewHandler(orch, validator, loc),
		amqpConn:        amqpConn,
		publisher:       publisher,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (history.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := db.ConnectToDB(ctx, cfg.Storage, logger)
		if err != nil {
			return nil, err
		}
		return history.NewPostgresStore(ctx, pool, logger)
	default:
		return history.NewSQLiteStore(ctx, cfg.Storage.Path, logger)
	}
}

func (c *Container) Shutdown() error {
	// drain alert deliveries before tearing transports down
	c.AlertSvc.Stop()

	if c.publisher != nil {
		_ = c.publisher.Close()
	}
	if c.amqpConn != nil {
		_ = c.amqpConn.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
