// Package catalog holds the movie collection and the rating and query logic
// over it. A Catalog is safe for concurrent use: every operation runs under
// one mutex, so no caller observes another's mutation half done.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"moviecatalog/pkg/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Observer is told about changes to catalog state. Calls happen while the
// catalog lock is held, so implementations must not call back into it.
type Observer interface {
	OnMovieCount(n int)
	OnRatingAdded(movieID string, value float64)
}

type nopObserver struct{}

func (nopObserver) OnMovieCount(int)              {}
func (nopObserver) OnRatingAdded(string, float64) {}

type Catalog struct {
	mu       sync.RWMutex
	store    Store
	observer Observer
}

type Option func(*Catalog)

func WithObserver(o Observer) Option {
	return func(c *Catalog) {
		if o != nil {
			c.observer = o
		}
	}
}

func New(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:    store,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create adds a movie with an empty rating history. Ratings on the input
// are ignored.
func (c *Catalog) Create(ctx context.Context, movie models.Movie) error {
	movie.Ratings = []float64{}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Insert(ctx, movie); err != nil {
		if errors.Is(err, ErrConflict) {
			return fmt.Errorf("%w: movie %q already exists", ErrConflict, movie.ID)
		}
		return fmt.Errorf("insert movie %q: %w", movie.ID, err)
	}
	c.reportCount(ctx)
	return nil
}

// Update changes the whitelisted fields set in patch. An empty patch only
// checks that the movie exists.
func (c *Catalog) Update(ctx context.Context, id string, patch models.MoviePatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if patch.Empty() {
		_, err := c.get(ctx, id)
		return err
	}
	if err := c.store.Update(ctx, id, patch); err != nil {
		return c.wrap(err, id)
	}
	return nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		return c.wrap(err, id)
	}
	c.reportCount(ctx)
	return nil
}

func (c *Catalog) Get(ctx context.Context, id string) (models.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.get(ctx, id)
}

func (c *Catalog) get(ctx context.Context, id string) (models.Movie, error) {
	movie, err := c.store.Get(ctx, id)
	if err != nil {
		return models.Movie{}, c.wrap(err, id)
	}
	return movie, nil
}

// AddRating appends value to the movie's ratings. The range is checked
// before the lookup, so an out-of-range value on a missing movie is a
// validation error.
func (c *Catalog) AddRating(ctx context.Context, id string, value float64) error {
	if math.IsNaN(value) || validate.Var(value, ratingRule) != nil {
		return invalid("rating must be between %d and %d", MinRating, MaxRating)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.AppendRating(ctx, id, value); err != nil {
		return c.wrap(err, id)
	}
	c.observer.OnRatingAdded(id, value)
	return nil
}

// AverageRating returns nil when the movie has no ratings yet.
func (c *Catalog) AverageRating(ctx context.Context, id string) (*float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	movie, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	avg, ok := Average(movie.Ratings)
	if !ok {
		return nil, nil
	}
	return &avg, nil
}

func (c *Catalog) TopRated(ctx context.Context) ([]models.Movie, error) {
	movies, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, notFound("no movies found")
	}
	return RankByAverage(movies), nil
}

func (c *Catalog) ByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	return c.query(ctx, "no movies found for this genre", func(m []models.Movie) []models.Movie {
		return FilterByGenre(m, genre)
	})
}

func (c *Catalog) ByDirector(ctx context.Context, director string) ([]models.Movie, error) {
	return c.query(ctx, "no movies found by this director", func(m []models.Movie) []models.Movie {
		return FilterByDirector(m, director)
	})
}

func (c *Catalog) SearchByTitleKeyword(ctx context.Context, keyword string) ([]models.Movie, error) {
	return c.query(ctx, "no movies found with this keyword", func(m []models.Movie) []models.Movie {
		return FilterByTitleKeyword(m, keyword)
	})
}

func (c *Catalog) Count(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Len(ctx)
}

func (c *Catalog) query(ctx context.Context, emptyMsg string, fn func([]models.Movie) []models.Movie) ([]models.Movie, error) {
	movies, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	result := fn(movies)
	if len(result) == 0 {
		return nil, notFound("%s", emptyMsg)
	}
	return result, nil
}

func (c *Catalog) list(ctx context.Context) ([]models.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	movies, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (c *Catalog) wrap(err error, id string) error {
	if errors.Is(err, ErrNotFound) {
		return notFound("movie %q", id)
	}
	return fmt.Errorf("movie %q: %w", id, err)
}

// reportCount must be called with the write lock held.
func (c *Catalog) reportCount(ctx context.Context) {
	if n, err := c.store.Len(ctx); err == nil {
		c.observer.OnMovieCount(n)
	}
}
