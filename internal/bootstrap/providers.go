package bootstrap

import (
	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/config"
	"quotes-aggregator/internal/domain"
	"quotes-aggregator/internal/infrastructure/browser"
	httpserver "quotes-aggregator/internal/infrastructure/http"
	"quotes-aggregator/internal/infrastructure/httpx"
	"quotes-aggregator/internal/infrastructure/kafka"
	"quotes-aggregator/internal/infrastructure/logx"
	"quotes-aggregator/internal/infrastructure/metrics"
	"quotes-aggregator/internal/infrastructure/scraper"
	"quotes-aggregator/internal/infrastructure/sources"
	"quotes-aggregator/internal/infrastructure/worker"

	"go.uber.org/zap"
)

// Extractors maps each source strategy to the component that reads it.
type Extractors map[domain.Strategy]application.Extractor

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideSources(cfg config.Config) ([]domain.Source, error) {
	all, err := sources.Filter(sources.Default(cfg.RenderSettle), cfg.Sources)
	if err != nil {
		return nil, err
	}
	if err := sources.Validate(all); err != nil {
		return nil, err
	}
	return all, nil
}

func ProvideFetcher(cfg config.Config) *httpx.Client {
	c := httpx.New(cfg.FetchTimeout)
	c.UserAgent = cfg.UserAgent
	c.Headers = map[string]string{"Accept-Language": cfg.AcceptLanguage}
	c.RetryMaxElapsed = cfg.FetchRetryMax
	return c
}

func ProvideBrowser(cfg config.Config, log *zap.Logger) *browser.Chrome {
	return browser.NewChrome(browser.ChromeOptions{
		ExecPath:  cfg.ChromePath,
		Headless:  cfg.ChromeHeadless,
		NoSandbox: cfg.ChromeNoSandbox,
		UserAgent: cfg.UserAgent,
	}, log)
}

func ProvideExtractors(fetch *httpx.Client, chrome *browser.Chrome, cfg config.Config, log *zap.Logger) Extractors {
	return Extractors{
		domain.StrategyStaticMarkup: scraper.NewStatic(fetch),
		domain.StrategyRenderedPage: browser.NewRendered(chrome, cfg.RenderTimeout, log),
	}
}

func ProvideMetrics() *metrics.Metrics { return metrics.New() }

// ProvidePublisher returns nil when KAFKA_BROKERS is empty.
func ProvidePublisher(cfg config.Config, log *zap.Logger) (application.SamplePublisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, func() {}, nil
	}
	p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	log.Info("kafka_publisher_enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	return p, func() { _ = p.Close() }, nil
}

func ProvideCollector(
	srcs []domain.Source,
	ex Extractors,
	store application.RateStore,
	pub application.SamplePublisher,
	m *metrics.Metrics,
	log *zap.Logger,
) *application.Collector {
	opts := []application.CollectorOption{
		application.WithObserver(m),
		application.WithLogger(log),
	}
	if pub != nil {
		opts = append(opts, application.WithPublisher(pub))
	}
	return application.NewCollector(srcs, ex, store, opts...)
}

func ProvidePoller(c *application.Collector, cfg config.Config, log *zap.Logger) *worker.Poller {
	return &worker.Poller{Collector: c, Interval: cfg.PollInterval, Log: log}
}

func ProvideQuotesService(store application.RateStore) *application.QuotesService {
	return application.NewQuotesService(store)
}

func ProvideServer(svc *application.QuotesService, m *metrics.Metrics) *httpserver.Server {
	return httpserver.NewServer(svc,
		httpserver.WithRequestObserver(m),
		httpserver.WithMetricsHandler(m.Handler()),
	)
}
