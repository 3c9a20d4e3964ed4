package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PaisaPulse/internal/domain/repository"
	domsvc "PaisaPulse/internal/domain/service"
	"PaisaPulse/internal/handler/api"
	mid "PaisaPulse/internal/middleware"
	internalrepo "PaisaPulse/internal/repository"
	"PaisaPulse/internal/service/gateway"
	"PaisaPulse/internal/services/analytics"
	"PaisaPulse/internal/services/fraud"
	"PaisaPulse/internal/usecase"
	pkgcache "PaisaPulse/pkg/cache"
	pkgch "PaisaPulse/pkg/clickhouse"
	"PaisaPulse/pkg/config"
	pkgkafka "PaisaPulse/pkg/kafka"
	applogger "PaisaPulse/pkg/logger"
	"PaisaPulse/pkg/metrics"
	"PaisaPulse/pkg/queue"
	"PaisaPulse/pkg/server"
	"PaisaPulse/pkg/util"
)

// ProvideLogger creates the shared application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if db == "" {
		db = "paisapulse"
	}
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		"CREATE TABLE IF NOT EXISTS " + ledgerTable(cfg) + " (user_id String, ts DateTime, amount Int64, direction String, category String, source String, raw String) ENGINE=MergeTree ORDER BY (user_id, ts)",
		"CREATE TABLE IF NOT EXISTS " + alertsTable(cfg) + " (id String, user_id String, amount Int64, decision String, status String, reasons String, created_at DateTime, updated_at DateTime) ENGINE=ReplacingMergeTree(updated_at) ORDER BY id",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

func ledgerTable(cfg *config.Config) string {
	db := cfg.ClickHouse.Database
	if db == "" {
		db = "paisapulse"
	}
	t := cfg.ClickHouse.LedgerTable
	if t == "" {
		t = "ledger"
	}
	return db + "." + t
}

func alertsTable(cfg *config.Config) string {
	db := cfg.ClickHouse.Database
	if db == "" {
		db = "paisapulse"
	}
	t := cfg.ClickHouse.AlertsTable
	if t == "" {
		t = "fraud_alerts"
	}
	return db + "." + t
}

// ProvideKafkaProducer creates a Kafka producer when the notifier uses Kafka.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Notifier.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the derivation cache, nil when disabled.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.Redis.Enabled {
		host, port := splitAddr(cfg.Cache.Redis.Addr)
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(host),
			pkgcache.WithRedisPort(port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return pkgcache.NewLayeredCache(rc), nil
	}
	return pkgcache.NewMemoryCache(), nil
}

func splitAddr(addr string) (string, int) {
	host, portStr, found := strings.Cut(addr, ":")
	if !found {
		return addr, 6379
	}
	return host, util.ParseIntDefault(portStr, 6379)
}

// ProvideLedger creates the ClickHouse ledger repository.
func ProvideLedger(chClient *pkgch.Client, cfg *config.Config) repository.Ledger {
	return internalrepo.NewClickHouseLedger(chClient.DB(), ledgerTable(cfg))
}

// ProvideAlertStore creates the ClickHouse alert repository.
func ProvideAlertStore(chClient *pkgch.Client, cfg *config.Config) repository.AlertStore {
	return internalrepo.NewClickHouseAlertStore(chClient.DB(), alertsTable(cfg))
}

// ProvideNotifier creates the outbound notifier by configured transport.
func ProvideNotifier(cfg *config.Config, producer *pkgkafka.Producer, logger *applogger.Logger) (repository.Notifier, error) {
	switch cfg.Notifier.Type {
	case "kafka":
		if producer == nil {
			return nil, fmt.Errorf("kafka notifier requires a producer")
		}
		return internalrepo.NewKafkaNotifier(producer, cfg.Kafka.NotifyTopic), nil
	case "redis", "":
		host, port := splitAddr(cfg.Cache.Redis.Addr)
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(host),
			pkgcache.WithRedisPort(port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis notifier: %w", err)
		}
		q := queue.NewRedisPublisher(logger, rc.Client())
		// Ship aggregated error logs over the same queue.
		logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          "logs.errors",
			Publisher:      q,
		})
		return internalrepo.NewRedisNotifier(q), nil
	default:
		return nil, fmt.Errorf("unknown notifier type %q", cfg.Notifier.Type)
	}
}

// ProvideFraudEngine creates the screening engine from configured thresholds.
func ProvideFraudEngine(cfg *config.Config) *fraud.Engine {
	return fraud.NewEngine(fraud.Config{
		VelocityWindow:  cfg.Fraud.VelocityWindow,
		VelocityMax:     cfg.Fraud.VelocityMax,
		SpikeMultiplier: cfg.Fraud.SpikeMultiplier,
		SpikeMinHistory: cfg.Fraud.SpikeMinHistory,
	})
}

// ProvideForecaster selects the builtin seasonal model or the external HTTP
// model service.
func ProvideForecaster(cfg *config.Config) domsvc.IncomeForecaster {
	if cfg.Forecast.Mode == "http" {
		return analytics.NewHTTPIncomeForecaster(cfg)
	}
	return analytics.NewSeasonalForecaster(cfg.Forecast.HorizonDays)
}

// ProvideMessageIngestor creates the ingest use case.
func ProvideMessageIngestor(
	ledger repository.Ledger,
	alerts repository.AlertStore,
	notifier repository.Notifier,
	engine *fraud.Engine,
	m repository.Metrics,
	logger *applogger.Logger,
	cache pkgcache.Service,
) *usecase.MessageIngestor {
	ing := usecase.NewMessageIngestor(ledger, alerts, notifier, engine, m, logger)
	if cache != nil {
		ing.SetCache(cache)
	}
	return ing
}

// ProvideRiskAdvisor creates the advisory use case.
func ProvideRiskAdvisor(
	ledger repository.Ledger,
	forecaster domsvc.IncomeForecaster,
	m repository.Metrics,
	cache pkgcache.Service,
	cfg *config.Config,
) *usecase.RiskAdvisor {
	advisor := usecase.NewRiskAdvisor(ledger, forecaster, m, cfg.Forecast.HorizonDays)
	if cache != nil {
		ttl := cfg.Cache.ProfileTTL
		if ttl <= 0 {
			ttl = 60 * time.Second
		}
		advisor.SetCache(cache, ttl)
	}
	return advisor
}

// ProvideAdviceAggregate creates the fan-out advice use case.
func ProvideAdviceAggregate(advisor *usecase.RiskAdvisor) *usecase.AdviceAggregateUseCase {
	return usecase.NewAdviceAggregateUseCase(advisor)
}

// ProvideIncomeSeries creates the income series use case.
func ProvideIncomeSeries(ledger repository.Ledger) *usecase.IncomeSeriesUseCase {
	return usecase.NewIncomeSeriesUseCase(ledger)
}

// ProvideAlertLifecycle creates the alert reply use case.
func ProvideAlertLifecycle(
	alerts repository.AlertStore,
	notifier repository.Notifier,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.AlertLifecycle {
	return usecase.NewAlertLifecycle(alerts, notifier, m, logger)
}

// ProvideKafkaConsumer creates a Kafka consumer when ingesting from Kafka.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Ingest.Source != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaMessagesHandler registers the handler for the inbound topic.
func ProvideKafkaMessagesHandler(ingestor *usecase.MessageIngestor, m repository.Metrics, cfg *config.Config) *usecase.KafkaMessagesHandler {
	return usecase.NewKafkaMessagesHandler(cfg.Kafka.InboundTopic, ingestor, m)
}

// ProvideMessageCollector creates the gateway collector when ingesting over
// WebSocket. Other ingest sources run without a collector.
func ProvideMessageCollector(
	cfg *config.Config,
	ingestor *usecase.MessageIngestor,
	m repository.Metrics,
) *usecase.MessageCollector {
	if cfg.Ingest.Source != "websocket" {
		return nil
	}
	stream := gateway.New(
		cfg.Gateway.APIKey,
		cfg.Gateway.WebSocketURL,
		cfg.Gateway.ReconnectDelay,
		cfg.Gateway.PingInterval,
	)
	pipe := mid.NewIngestPipeline(ingestor, m,
		mid.WithMaxUserRPS(cfg.Ingest.MaxUserRPS),
		mid.WithBufferSize(cfg.Ingest.BufferSize),
	)
	return usecase.NewMessageCollector(stream, ingestor, m, pipe)
}

// ProvideEchoHandler creates the HTTP handler surface.
func ProvideEchoHandler(
	logger *applogger.Logger,
	advisor *usecase.RiskAdvisor,
	advice *usecase.AdviceAggregateUseCase,
	series *usecase.IncomeSeriesUseCase,
	ingestor *usecase.MessageIngestor,
	alerts *usecase.AlertLifecycle,
	ledger repository.Ledger,
) *api.AdvisorEchoHandler {
	return api.NewAdvisorEchoHandler(logger, advisor, advice, series, ingestor, alerts, ledger)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.MessageCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaMessagesHandler,
	chClient *pkgch.Client,
	notifier repository.Notifier,
	handler *api.AdvisorEchoHandler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, collector, consumer, kh, chClient, notifier)
	app.SetHTTPHandler(handler)
	return app
}
