package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/movie-catalog-service/http/controller"
	middlewares "github.com/tnqbao/movie-catalog-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	r.GET("/healthz", ctrl.HealthCheck)

	apiRoutes := r.Group("/api")
	{
		movieRoutes := apiRoutes.Group("/movies")
		{
			movieRoutes.GET("", ctrl.ListMovies)
			movieRoutes.GET("/:id", ctrl.GetMovieByID)
			movieRoutes.POST("", ctrl.CreateMovie)
			movieRoutes.PUT("/:id", ctrl.UpdateMovie)
			movieRoutes.DELETE("/:id", ctrl.DeleteMovie)
		}
	}
	return r
}
