package models

import (
	"time"
)

type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	ReleaseYear int       `json:"releaseYear"`
	Genre       string    `json:"genre"`
	Ratings     []float64 `json:"ratings"`
}

// Clone returns a copy that shares no rating storage with m.
func (m Movie) Clone() Movie {
	out := m
	out.Ratings = make([]float64, len(m.Ratings))
	copy(out.Ratings, m.Ratings)
	return out
}

// MoviePatch holds the fields Update may change. Nil fields are left alone.
type MoviePatch struct {
	Title       *string
	Director    *string
	ReleaseYear *int
	Genre       *string
}

func (p MoviePatch) Empty() bool {
	return p.Title == nil && p.Director == nil && p.ReleaseYear == nil && p.Genre == nil
}

func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
}

type MovieRecord struct {
	Seq         uint   `gorm:"primaryKey;autoIncrement"`
	MovieID     string `gorm:"size:255;not null;uniqueIndex"`
	Title       string `gorm:"not null"`
	Director    string `gorm:"not null"`
	ReleaseYear int    `gorm:"not null"`
	Genre       string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RatingRecord struct {
	ID        uint    `gorm:"primaryKey"`
	MovieID   string  `gorm:"size:255;not null;index"`
	Score     float64 `gorm:"not null;check:score >= 1 AND score <= 5"`
	CreatedAt time.Time
}
