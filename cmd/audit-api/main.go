package main

import (
	"flag"
	"log"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "dq-audit/docs"
	"dq-audit/internal/api"
	"dq-audit/internal/api/handler"
	"dq-audit/internal/config"
	"dq-audit/internal/store"
	"dq-audit/pkg/router"
)

// @title Data Quality Audit API
// @version 1.0
// @description REST API for running data quality audits and fetching their reports.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", "config.yaml", "Path to config.yaml")
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := store.InitDB(cfg.Store); err != nil {
		log.Fatalf("init run history: %v", err)
	}

	handler.Init(cfg)

	r := router.New()
	api.RegisterRoutes(r)
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))

	r.Start(*addr)
}
