package database

import (
	"context"
	"errors"

	"moviecatalog/pkg/catalog"
	"moviecatalog/pkg/models"

	"gorm.io/gorm"
)

// MovieStore is a catalog.Store backed by gorm. Insertion order is the
// auto-increment seq column; ratings are ordered by their primary key.
type MovieStore struct {
	db *gorm.DB
}

var _ catalog.Store = (*MovieStore)(nil)

func NewMovieStore(db *gorm.DB) *MovieStore {
	return &MovieStore{db: db}
}

func (s *MovieStore) Ping(ctx context.Context) error {
	return Ping(ctx, s.db)
}

func (s *MovieStore) Insert(ctx context.Context, movie models.Movie) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MovieRecord{}).Where("movie_id = ?", movie.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return catalog.ErrConflict
		}
		rec := models.MovieRecord{
			MovieID:     movie.ID,
			Title:       movie.Title,
			Director:    movie.Director,
			ReleaseYear: movie.ReleaseYear,
			Genre:       movie.Genre,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		for _, v := range movie.Ratings {
			if err := tx.Create(&models.RatingRecord{MovieID: movie.ID, Score: v}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *MovieStore) Get(ctx context.Context, id string) (models.Movie, error) {
	db := s.db.WithContext(ctx)

	var rec models.MovieRecord
	if err := db.Where("movie_id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Movie{}, catalog.ErrNotFound
		}
		return models.Movie{}, err
	}

	var ratings []float64
	if err := db.Model(&models.RatingRecord{}).Where("movie_id = ?", id).Order("id").Pluck("score", &ratings).Error; err != nil {
		return models.Movie{}, err
	}
	if ratings == nil {
		ratings = make([]float64, 0)
	}
	return toMovie(rec, ratings), nil
}

func (s *MovieStore) List(ctx context.Context) ([]models.Movie, error) {
	db := s.db.WithContext(ctx)

	var recs []models.MovieRecord
	if err := db.Order("seq").Find(&recs).Error; err != nil {
		return nil, err
	}
	var ratingRecs []models.RatingRecord
	if err := db.Order("id").Find(&ratingRecs).Error; err != nil {
		return nil, err
	}

	byMovie := make(map[string][]float64, len(recs))
	for _, r := range ratingRecs {
		byMovie[r.MovieID] = append(byMovie[r.MovieID], r.Score)
	}

	movies := make([]models.Movie, len(recs))
	for i, rec := range recs {
		ratings := byMovie[rec.MovieID]
		if ratings == nil {
			ratings = make([]float64, 0)
		}
		movies[i] = toMovie(rec, ratings)
	}
	return movies, nil
}

func (s *MovieStore) Update(ctx context.Context, id string, patch models.MoviePatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Director != nil {
		updates["director"] = *patch.Director
	}
	if patch.ReleaseYear != nil {
		updates["release_year"] = *patch.ReleaseYear
	}
	if patch.Genre != nil {
		updates["genre"] = *patch.Genre
	}

	db := s.db.WithContext(ctx)
	if len(updates) == 0 {
		return s.exists(db, id)
	}
	result := db.Model(&models.MovieRecord{}).Where("movie_id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MovieStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("movie_id = ?", id).Delete(&models.MovieRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return tx.Where("movie_id = ?", id).Delete(&models.RatingRecord{}).Error
	})
}

func (s *MovieStore) AppendRating(ctx context.Context, id string, value float64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.exists(tx, id); err != nil {
			return err
		}
		return tx.Create(&models.RatingRecord{MovieID: id, Score: value}).Error
	})
}

func (s *MovieStore) Len(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.MovieRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *MovieStore) exists(db *gorm.DB, id string) error {
	var count int64
	if err := db.Model(&models.MovieRecord{}).Where("movie_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func toMovie(rec models.MovieRecord, ratings []float64) models.Movie {
	return models.Movie{
		ID:          rec.MovieID,
		Title:       rec.Title,
		Director:    rec.Director,
		ReleaseYear: rec.ReleaseYear,
		Genre:       rec.Genre,
		Ratings:     ratings,
	}
}
