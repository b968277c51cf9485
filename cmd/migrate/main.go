package main

import (
	"log"

	"wellspace/backend/internal/config"
	"wellspace/backend/internal/db"
)

func main() {
	cfg := config.Load()
	if cfg.KVBackend != config.KVBackendSQLite {
		log.Println("nothing to migrate: sqlite backend not selected")
		return
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Println("migrations applied successfully")
}
