package main

import (
	"flag"
	"log"

	"github.com/bracken1022/prompt-museum/config"
	"github.com/bracken1022/prompt-museum/internal/database"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Driver() != config.DriverPostgres {
		log.Fatal("DATABASE_URL is not set: SQL migrations target Postgres, other drivers use DB_AUTO_MIGRATE")
	}

	if *down > 0 {
		if err := database.MigrateDown(cfg.DatabaseURL, *down); err != nil {
			log.Fatal(err)
		}
		log.Printf("rolled back %d migration(s)", *down)
		return
	}

	if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}
	log.Println("database migrations applied")
}
