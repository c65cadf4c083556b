//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"snowreport/internal"
	"snowreport/internal/apiclient"
	"snowreport/internal/archive"
	"snowreport/internal/controllers"
	"snowreport/internal/providers"
	"snowreport/internal/scheduler"
	"snowreport/internal/scraper"
	"snowreport/internal/services"
	"snowreport/internal/storage"
	"snowreport/internal/structures"
)

var scrapeSet = wire.NewSet(
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,
	storage.NewDatabase,
	storage.NewStore,
	archive.NewArchiveProvider,
	scraper.NewFetcher,
	wire.Bind(new(scraper.FetcherInterface), new(*scraper.Fetcher)),
	services.NewScrapeService,
	wire.Bind(new(services.ScrapeServiceInterface), new(*services.ScrapeService)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		scrapeSet,
		services.NewRecordService,
		wire.Bind(new(services.RecordServiceInterface), new(*services.RecordService)),
		scheduler.NewScheduler,
		controllers.NewScrapeController,
		controllers.NewStationController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitScrapeService(cfg *structures.CliFlags) (services.ScrapeServiceInterface, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		scrapeSet,
	)

	return nil, nil, nil
}

func InitRemoteClient(cfg *structures.CliFlags) (apiclient.ClientInterface, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		apiclient.NewClient,
		wire.Bind(new(apiclient.ClientInterface), new(*apiclient.Client)),
	)

	return nil, nil
}
