package main

import (
	"flag"
	"log"
	"os"

	"InflationPanel/internal/di"
	"InflationPanel/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s alignment=%s/%s", cfg.Environment, cfg.Alignment.Strategy, cfg.Alignment.GapPolicy)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
