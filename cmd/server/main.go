package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"sabormap/countries"
	"sabormap/database"
	"sabormap/handlers"
	"sabormap/views"
	"sabormap/worker"
)

// main initializes logging, the alias table, the database connection and the
// background audit worker, then serves the dashboard API.
func main() {
	_ = godotenv.Load()

	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	aliases := countries.Default()
	if path := os.Getenv("ALIASES_FILE"); path != "" {
		loaded, err := countries.Load(path)
		if err != nil {
			log.WithError(err).Fatal("loading alias table failed")
		}
		aliases = loaded
		log.WithField("path", path).Info("alias table loaded from file")
	}

	db, err := database.Connect()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	explorer := views.NewExplorer(db, aliases)

	worker.StartAuditWorker(db, aliases)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handlers.HealthHandler())
	mux.HandleFunc("GET /api/restaurant-count", handlers.RestaurantCountHandler(explorer))
	mux.HandleFunc("GET /api/country-stats", handlers.CountryStatsHandler(explorer))
	mux.HandleFunc("GET /api/country-prices", handlers.CountryPricesHandler(explorer))
	mux.HandleFunc("GET /api/restaurants", handlers.RestaurantsHandler(explorer))
	mux.HandleFunc("GET /api/prices", handlers.PricesHandler(explorer))
	mux.HandleFunc("GET /api/top-restaurants", handlers.TopRestaurantsHandler(explorer))
	mux.HandleFunc("GET /api/top-cafes", handlers.TopCafesHandler(explorer))
	mux.HandleFunc("GET /api/experience-by-country", handlers.ExperienceHandler(explorer))
	mux.HandleFunc("GET /api/violin-cuisines", handlers.ViolinCuisinesHandler(explorer))
	mux.HandleFunc("GET /api/price-vs-rating", handlers.PriceVsRatingHandler(explorer))
	mux.HandleFunc("GET /api/countries", handlers.CountriesHandler(explorer))
	mux.HandleFunc("GET /api/countries-avg", handlers.CountriesAvgHandler(explorer))
	mux.HandleFunc("GET /api/countries-avg-rating", handlers.CountriesAvgRatingHandler(explorer))
	mux.HandleFunc("GET /api/top-countries", handlers.TopCountriesHandler(explorer))
	mux.HandleFunc("GET /api/top-countries-stats", handlers.TopCountriesStatsHandler(explorer))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:5174"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
	})
	handler := c.Handler(handlers.RequestID(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.WithField("port", port).Info("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
