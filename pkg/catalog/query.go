package catalog

import (
	"cmp"
	"slices"
	"strings"

	"moviecatalog/pkg/models"
)

// Average returns the arithmetic mean of ratings. ok is false when there
// are no ratings.
func Average(ratings []float64) (avg float64, ok bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings)), true
}

// RankByAverage returns a new slice ordered by descending average rating.
// Unrated movies rank as 0. Equal averages keep their input order.
func RankByAverage(movies []models.Movie) []models.Movie {
	type ranked struct {
		movie models.Movie
		avg   float64
	}
	rows := make([]ranked, len(movies))
	for i, m := range movies {
		avg, _ := Average(m.Ratings)
		rows[i] = ranked{movie: m, avg: avg}
	}
	slices.SortStableFunc(rows, func(a, b ranked) int {
		return cmp.Compare(b.avg, a.avg)
	})
	result := make([]models.Movie, len(rows))
	for i, r := range rows {
		result[i] = r.movie
	}
	return result
}

func FilterByGenre(movies []models.Movie, genre string) []models.Movie {
	genre = strings.ToLower(genre)
	return filter(movies, func(m models.Movie) bool {
		return strings.ToLower(m.Genre) == genre
	})
}

func FilterByDirector(movies []models.Movie, director string) []models.Movie {
	director = strings.ToLower(director)
	return filter(movies, func(m models.Movie) bool {
		return strings.ToLower(m.Director) == director
	})
}

// FilterByTitleKeyword matches keyword anywhere in the title, ignoring case.
// An empty keyword matches everything.
func FilterByTitleKeyword(movies []models.Movie, keyword string) []models.Movie {
	keyword = strings.ToLower(keyword)
	return filter(movies, func(m models.Movie) bool {
		return strings.Contains(strings.ToLower(m.Title), keyword)
	})
}

func filter(movies []models.Movie, keep func(models.Movie) bool) []models.Movie {
	result := make([]models.Movie, 0)
	for _, m := range movies {
		if keep(m) {
			result = append(result, m)
		}
	}
	return result
}
