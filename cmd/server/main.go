package main

import (
	"log"
	"net/http"

	"zoumai/internal/config"
	"zoumai/internal/logger"
	"zoumai/internal/middleware"
	"zoumai/internal/routes"
	"zoumai/internal/service"
	"zoumai/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Trip lifecycle core over the GORM store
	trips := service.NewTripLifecycle(store.NewTripStore(config.DB))

	// Setup Gin router (recovery + request logging attached inside)
	r := routes.SetupRouter(trips)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
