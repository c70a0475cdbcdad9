package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tnqbao/movie-catalog-service/entity"
	"github.com/tnqbao/movie-catalog-service/http/controller/dto"
	"github.com/tnqbao/movie-catalog-service/provider"
	"github.com/tnqbao/movie-catalog-service/repository"
	"github.com/tnqbao/movie-catalog-service/utils"
)

func (ctrl *Controller) ListMovies(c *gin.Context) {
	ctx := c.Request.Context()

	search := c.Query("search")
	genre := c.Query("genre")
	sort := c.Query("sort")

	movies, err := ctrl.Provider.Movie.List(ctx, search, genre, sort)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Movie] Failed to list movies: %v", err)
		utils.JSON500(c, "Failed to retrieve movies")
		return
	}

	if movies == nil {
		movies = []entity.Movie{}
	}
	utils.JSON200(c, movies)
}

func (ctrl *Controller) GetMovieByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid movie id format")
		return
	}

	movie, err := ctrl.Provider.Movie.GetByID(ctx, id)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Movie] Failed to get movie %s: %v", id, err)
		utils.JSON500(c, "Failed to retrieve movie")
		return
	}
	if movie == nil {
		utils.JSON404(c, "Movie not found")
		return
	}

	utils.JSON200(c, movie)
}

func (ctrl *Controller) CreateMovie(c *gin.Context) {
	ctx := c.Request.Context()

	var form dto.MovieFormDTO
	if err := c.ShouldBind(&form); err != nil {
		utils.JSON400(c, "Invalid movie payload: "+err.Error())
		return
	}

	input, cleanup, err := movieInputFromForm(c, form)
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}
	defer cleanup()

	movie, err := ctrl.Provider.Movie.Create(ctx, input)
	if err != nil {
		ctrl.respondMovieError(c, err, "create")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Movie] Created movie '%s' (%s)", movie.Name, movie.ID)
	utils.JSON201(c, movie)
}

func (ctrl *Controller) UpdateMovie(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid movie id format")
		return
	}

	var form dto.MovieFormDTO
	if err := c.ShouldBind(&form); err != nil {
		utils.JSON400(c, "Invalid movie payload: "+err.Error())
		return
	}

	input, cleanup, err := movieInputFromForm(c, form)
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}
	defer cleanup()

	movie, err := ctrl.Provider.Movie.Update(ctx, id, input)
	if err != nil {
		ctrl.respondMovieError(c, err, "update")
		return
	}
	if movie == nil {
		utils.JSON404(c, "Movie not found")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Movie] Updated movie '%s' (%s)", movie.Name, movie.ID)
	utils.JSON200(c, movie)
}

func (ctrl *Controller) DeleteMovie(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid movie id format")
		return
	}

	deleted, err := ctrl.Provider.Movie.Delete(ctx, id)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Movie] Failed to delete movie %s: %v", id, err)
		utils.JSON500(c, "Failed to delete movie")
		return
	}
	if !deleted {
		utils.JSON404(c, "Movie not found")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Movie] Deleted movie %s", id)
	utils.JSON200(c, gin.H{"message": "Movie deleted successfully"})
}

func (ctrl *Controller) HealthCheck(c *gin.Context) {
	utils.JSON200(c, gin.H{"status": "ok"})
}

// movieInputFromForm assembles the provider input, resolving the image source
// with file-over-URL precedence. The returned cleanup closes the uploaded
// file once the provider is done reading it.
func movieInputFromForm(c *gin.Context, form dto.MovieFormDTO) (provider.MovieInput, func(), error) {
	input := provider.MovieInput{
		Name:        form.Name,
		Description: form.Description,
		Genre:       form.Genre,
		Rating:      form.Rating,
	}
	cleanup := func() {}

	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return input, cleanup, fmt.Errorf("failed to open uploaded image: %w", err)
		}
		cleanup = func() { _ = file.Close() }

		input.Image = provider.UploadedFile{
			Reader:      file,
			Size:        fileHeader.Size,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
		return input, cleanup, nil
	}

	if form.ImageURL != nil && strings.TrimSpace(*form.ImageURL) != "" {
		input.Image = provider.ExternalURL(*form.ImageURL)
	}
	return input, cleanup, nil
}

func (ctrl *Controller) respondMovieError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Movie] Name conflict on %s: %v", action, err)
		utils.JSON409(c, err.Error())
	case errors.Is(err, provider.ErrValidation):
		utils.JSON400(c, err.Error())
	default:
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Movie] Failed to %s movie: %v", action, err)
		utils.JSON500(c, "Failed to "+action+" movie")
	}
}
