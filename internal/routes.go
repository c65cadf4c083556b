package internal

import (
	"net/http"
	"snowreport/internal/controllers"
	"snowreport/internal/providers"
)

func InitRoutes(scrapeController *controllers.ScrapeController, stationController *controllers.StationController, healthController *controllers.HealthController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/pistas", http.HandlerFunc(scrapeController.GetSlopes))
	routers.Post("/api/scrape-and-save", http.HandlerFunc(scrapeController.ScrapeAndSave))
	routers.Get("/estacion/{slug}", http.HandlerFunc(scrapeController.GetStation))
	routers.Get("/estaciones", http.HandlerFunc(scrapeController.GetStations))
	routers.Get("/status", http.HandlerFunc(healthController.Status))

	routers.Get("/api/estacion-db/{slug}", http.HandlerFunc(stationController.GetStored))
	routers.Get("/api/estacion-db/{$}", http.HandlerFunc(stationController.GetStored))
	routers.Get("/api/estaciones-db", http.HandlerFunc(stationController.ListStored))
	routers.Post("/api/estaciones", http.HandlerFunc(stationController.Save))
	return routers
}
