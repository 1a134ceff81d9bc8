package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	TickInterval time.Duration
}

func loadConfig() Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded configuration from .env")
	}

	cfg := Config{
		Port:         "3001",
		TickInterval: time.Second,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if raw := os.Getenv("TICK_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			log.Printf("⚠️ Ignoring invalid TICK_MS=%q\n", raw)
		} else {
			cfg.TickInterval = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}
