package api

import (
	"context"
	"errors"
	"net/http"

	"moviecatalog/pkg/catalog"
	"moviecatalog/pkg/logging"
	"moviecatalog/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Pinger is implemented by stores that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog *catalog.Catalog
	pinger  Pinger
}

func NewHandler(c *catalog.Catalog, pinger Pinger) *Handler {
	return &Handler{catalog: c, pinger: pinger}
}

// Pointer fields: "required" only rejects absent keys, empty strings pass.
type createMovieRequest struct {
	ID          *string `json:"id" binding:"required"`
	Title       *string `json:"title" binding:"required"`
	Director    *string `json:"director" binding:"required"`
	ReleaseYear *int    `json:"releaseYear" binding:"required"`
	Genre       *string `json:"genre" binding:"required"`
}

type updateMovieRequest struct {
	Title       *string `json:"title"`
	Director    *string `json:"director"`
	ReleaseYear *int    `json:"releaseYear"`
	Genre       *string `json:"genre"`
}

type ratingRequest struct {
	Rating *float64 `json:"rating" binding:"required"`
}

const (
	msgInvalidMovie  = "Invalid movie data"
	msgInvalidRating = "Invalid rating value"
)

var updatableFields = map[string]bool{
	"title":       true,
	"director":    true,
	"releaseYear": true,
	"genre":       true,
}

func (h *Handler) createMovie(c *gin.Context) {
	var request createMovieRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidMovie})
		return
	}
	movie := models.Movie{
		ID:          *request.ID,
		Title:       *request.Title,
		Director:    *request.Director,
		ReleaseYear: *request.ReleaseYear,
		Genre:       *request.Genre,
	}
	if err := h.catalog.Create(c.Request.Context(), movie); err != nil {
		respondError(c, err)
		return
	}
	logging.Ctx(c.Request.Context()).Info().Str("movie_id", movie.ID).Msg("Movie created")
	c.JSON(http.StatusCreated, gin.H{"message": "Movie added successfully"})
}

func (h *Handler) updateMovie(c *gin.Context) {
	id := c.Param("id")
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidMovie})
		return
	}
	for name := range fields {
		if !updatableFields[name] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "field " + name + " cannot be updated"})
			return
		}
	}
	var request updateMovieRequest
	if err := json.Unmarshal(body, &request); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidMovie})
		return
	}

	patch := models.MoviePatch{
		Title:       request.Title,
		Director:    request.Director,
		ReleaseYear: request.ReleaseYear,
		Genre:       request.Genre,
	}
	if err := h.catalog.Update(c.Request.Context(), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Movie updated successfully"})
}

func (h *Handler) getMovie(c *gin.Context) {
	movie, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (h *Handler) deleteMovie(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	logging.Ctx(c.Request.Context()).Info().Str("movie_id", id).Msg("Movie deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Movie deleted successfully"})
}

func (h *Handler) addRating(c *gin.Context) {
	var request ratingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRating})
		return
	}
	if err := h.catalog.AddRating(c.Request.Context(), c.Param("id"), *request.Rating); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating added successfully"})
}

func (h *Handler) getAverageRating(c *gin.Context) {
	avg, err := h.catalog.AverageRating(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if avg == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"averageRating": *avg})
}

func (h *Handler) getTopRated(c *gin.Context) {
	movies, err := h.catalog.TopRated(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *Handler) getByGenre(c *gin.Context) {
	movies, err := h.catalog.ByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *Handler) getByDirector(c *gin.Context) {
	movies, err := h.catalog.ByDirector(c.Request.Context(), c.Param("director"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *Handler) searchMovies(c *gin.Context) {
	movies, err := h.catalog.SearchByTitleKeyword(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *Handler) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "DOWN",
				"details": "Database ping failed",
				"error":   err.Error(),
			})
			return
		}
	}
	count, err := h.catalog.Count(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Catalog unavailable",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"movies": count,
	})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("Unexpected catalog failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
