package repository

import (
	"github.com/tnqbao/movie-catalog-service/infra"
)

type Repository struct {
	MovieRepo *MovieRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		MovieRepo: NewMovieRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}
