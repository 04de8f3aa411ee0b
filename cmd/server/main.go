package main

import (
	"github.com/sirupsen/logrus"

	_ "github.com/joho/godotenv/autoload"

	httpapi "secret-hitler/internal/api/http"
	"secret-hitler/internal/api/ws"
	"secret-hitler/internal/config"
	"secret-hitler/internal/room"
	"secret-hitler/internal/store"
)

// @title Secret Hitler API
// @version 1.0
// @description REST API for a hidden-role social deduction game server (Go + Gin)
// @BasePath /
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	mem := store.NewMemoryStore()
	hub := ws.NewHub(log)
	rm := room.NewManager(mem, cfg, hub, log)
	r := httpapi.NewRouter(rm, hub, log)

	log.WithField("addr", cfg.HTTPAddr).Info("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
