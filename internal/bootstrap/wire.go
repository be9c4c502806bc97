//go:build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideStore,
	ProvideMetrics,
)

var collectorSet = wire.NewSet(
	ProvideSources,
	ProvideFetcher,
	ProvideBrowser,
	ProvideExtractors,
	ProvidePublisher,
	ProvideCollector,
	ProvidePoller,
)

// InitAPI builds the read API together with the in-process poller.
func InitAPI(ctx context.Context) (*API, func(), error) {
	wire.Build(
		infraSet,
		collectorSet,
		ProvideQuotesService,
		ProvideServer,
		wire.Struct(new(API), "*"),
	)
	return nil, nil, nil
}

// InitWorker builds the scheduler-only process.
func InitWorker(ctx context.Context) (*WorkerApp, func(), error) {
	wire.Build(
		infraSet,
		collectorSet,
		wire.Struct(new(WorkerApp), "*"),
	)
	return nil, nil, nil
}
