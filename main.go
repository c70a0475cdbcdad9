package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/tnqbao/movie-catalog-service/config"
	"github.com/tnqbao/movie-catalog-service/http/controller"
	routes "github.com/tnqbao/movie-catalog-service/http/route"
	infraPkg "github.com/tnqbao/movie-catalog-service/infra"
	"github.com/tnqbao/movie-catalog-service/provider"
	"github.com/tnqbao/movie-catalog-service/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)
	prov := provider.InitProvider(infra, repo)

	ctrl := controller.NewController(cfg, infra, prov)

	router := routes.SetupRouter(ctrl)

	addr := ":" + cfg.EnvConfig.Server.Port
	log.Println("HTTP Server started on " + addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
