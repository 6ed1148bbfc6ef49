package main

import (
	"flag"
	"log"

	"skill-matrix/internal/config"
	"skill-matrix/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	demo := flag.Bool("demo", false, "also seed a demo org (teams, employees, category assignments)")
	flag.Parse()

	godotenv.Load()
	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal("db connect failed:", err)
	}

	// Step 1: schema
	if err := migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// Step 2: reference data (roles, designations, skill catalog)
	if err := seedReferenceData(db); err != nil {
		log.Fatal("reference data failed:", err)
	}

	// Step 3: demo org
	if *demo {
		if err := seedDemoOrg(db); err != nil {
			log.Fatal("demo org failed:", err)
		}
	}

	logger.Info("=== all done ===")
}
