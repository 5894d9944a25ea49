package api

import (
	"net/http"

	"moviecatalog/pkg/logging"
	"moviecatalog/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(), metrics.Middleware())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	movies := r.Group("/movies")
	movies.POST("", h.createMovie)
	movies.GET("/top-rated", h.getTopRated)
	movies.GET("/search", h.searchMovies)
	movies.GET("/genre/:genre", h.getByGenre)
	movies.GET("/director/:director", h.getByDirector)
	movies.GET("/:id", h.getMovie)
	movies.PATCH("/:id", h.updateMovie)
	movies.DELETE("/:id", h.deleteMovie)
	movies.POST("/:id/rating", h.addRating)
	movies.GET("/:id/rating", h.getAverageRating)

	r.GET("/manage/health", h.healthCheck)
	r.GET("/metrics", metrics.Handler())

	return r
}
