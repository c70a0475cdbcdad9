package controller

import (
	"github.com/tnqbao/movie-catalog-service/config"
	"github.com/tnqbao/movie-catalog-service/infra"
	"github.com/tnqbao/movie-catalog-service/provider"
)

type Controller struct {
	Config   *config.Config
	Infra    *infra.Infra
	Provider *provider.Provider
}

func NewController(config *config.Config, infra *infra.Infra, prov *provider.Provider) *Controller {
	if prov == nil {
		panic("Failed to initialize Provider")
	}
	return &Controller{
		Config:   config,
		Infra:    infra,
		Provider: prov,
	}
}
