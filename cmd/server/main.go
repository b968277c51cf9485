package main

import (
	"log"

	"wellspace/backend/internal/config"
	"wellspace/backend/internal/db"
	"wellspace/backend/internal/handler"
	"wellspace/backend/internal/kv"
	"wellspace/backend/internal/llm"
	"wellspace/backend/internal/repository"
	"wellspace/backend/internal/router"
	"wellspace/backend/internal/service"
)

func main() {
	cfg := config.Load()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	progressRepo := repository.NewProgressRepository(store)
	routineRepo := repository.NewRoutineRepository(store)

	authService := service.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret, cfg.TokenTTL)
	focusService := service.NewFocusService(progressRepo)
	defer focusService.Shutdown()

	generator := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	routineService := service.NewRoutineService(generator, routineRepo, progressRepo)
	progressService := service.NewProgressService(progressRepo)

	authHandler := handler.NewAuthHandler(authService)
	focusHandler := handler.NewFocusHandler(focusService)
	routineHandler := handler.NewRoutineHandler(routineService)
	progressHandler := handler.NewProgressHandler(progressService)

	engine := router.New(authService, authHandler, focusHandler, routineHandler, progressHandler, cfg.CORSOrigins)
	log.Printf("backend listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func openStore(cfg config.Config) (kv.Store, func(), error) {
	if cfg.KVBackend == config.KVBackendBadger {
		store, err := kv.OpenBadger(cfg.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	return kv.NewSQLiteStore(database), func() { _ = database.Close() }, nil
}
