package main

import (
	"context"
	"flag"
	"log"
	"time"

	"zoumai/internal/config"
	"zoumai/internal/logger"
	"zoumai/internal/telemetry"
)

func main() {
	interval := flag.Duration("interval", 0, "run continuously at this interval (e.g. 30s); zero runs once")
	flag.Parse()

	logger.Setup()
	config.InitDB()

	sim := telemetry.NewSimulator(config.DB)
	ctx := context.Background()

	log.Println("🚛 Starting telemetry simulation...")
	if err := sim.Run(ctx); err != nil {
		log.Fatalf("telemetry simulation failed: %v", err)
	}

	if *interval <= 0 {
		log.Println("✅ Telemetry simulation completed")
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := sim.Run(ctx); err != nil {
			log.Fatalf("telemetry simulation failed: %v", err)
		}
	}
}
