package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/emirkaya/ChoirSystem/config"
	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/routes"
	"github.com/emirkaya/ChoirSystem/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	database.Connect(cfg)

	if _, err := scheduler.StartFeeCron(database.DB, cfg.FeeCronSchedule); err != nil {
		log.Fatalf("fee cron failed to start: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
