package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lmarchou/BENounou/config"
	"github.com/lmarchou/BENounou/database"
	"github.com/lmarchou/BENounou/routes"
)

// @title           BENounou API
// @version         1.0
// @description     Echo + PostgreSQL childcare management backend
// @BasePath        /
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	// Fail fast if the database is unreachable.
	database.Connect(cfg)

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
