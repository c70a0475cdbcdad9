package provider

import (
	"github.com/tnqbao/movie-catalog-service/infra"
	"github.com/tnqbao/movie-catalog-service/repository"
)

type Provider struct {
	Movie *MovieService
}

var provider *Provider

func InitProvider(infra *infra.Infra, repo *repository.Repository) *Provider {
	provider = &Provider{
		Movie: NewMovieService(repo.MovieRepo, infra.Minio, infra.Logger),
	}
	return provider
}

func GetProvider() *Provider {
	if provider == nil {
		panic("Provider not initialized")
	}
	return provider
}
