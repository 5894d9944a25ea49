package catalog

import (
	"context"
	"slices"

	"moviecatalog/pkg/models"
)

// Store is the ordered movie collection behind a Catalog. Implementations
// keep insertion order and report ErrNotFound / ErrConflict from this
// package. They need not be safe for concurrent use; Catalog serialises
// access.
type Store interface {
	Insert(ctx context.Context, movie models.Movie) error
	Get(ctx context.Context, id string) (models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	Update(ctx context.Context, id string, patch models.MoviePatch) error
	Delete(ctx context.Context, id string) error
	AppendRating(ctx context.Context, id string, value float64) error
	Len(ctx context.Context) (int, error)
}

// MemoryStore keeps movies in a slice. Lookups by id are linear scans.
type MemoryStore struct {
	movies []models.Movie
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		movies: make([]models.Movie, 0),
	}
}

func (s *MemoryStore) indexOf(id string) int {
	for i := range s.movies {
		if s.movies[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) Insert(_ context.Context, movie models.Movie) error {
	if s.indexOf(movie.ID) >= 0 {
		return ErrConflict
	}
	s.movies = append(s.movies, movie.Clone())
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Movie, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Movie{}, ErrNotFound
	}
	return s.movies[i].Clone(), nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Movie, error) {
	result := make([]models.Movie, len(s.movies))
	for i, m := range s.movies {
		result[i] = m.Clone()
	}
	return result, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, patch models.MoviePatch) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	patch.Apply(&s.movies[i])
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.movies = slices.Delete(s.movies, i, i+1)
	return nil
}

func (s *MemoryStore) AppendRating(_ context.Context, id string, value float64) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.movies[i].Ratings = append(s.movies[i].Ratings, value)
	return nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	return len(s.movies), nil
}
