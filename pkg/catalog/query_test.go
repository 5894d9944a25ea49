package catalog

import (
	"testing"

	"moviecatalog/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []float64
		expected float64
		ok       bool
	}{
		{name: "empty", ratings: nil, expected: 0, ok: false},
		{name: "single", ratings: []float64{4}, expected: 4, ok: true},
		{name: "mean", ratings: []float64{4, 2}, expected: 3, ok: true},
		{name: "fractional", ratings: []float64{1, 2}, expected: 1.5, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, ok := Average(tt.ratings)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, avg)
		})
	}
}

func TestRankByAverage(t *testing.T) {
	movies := []models.Movie{
		{ID: "unrated", Ratings: []float64{}},
		{ID: "low", Ratings: []float64{1, 2}},
		{ID: "tie-a", Ratings: []float64{4}},
		{ID: "high", Ratings: []float64{5, 5}},
		{ID: "tie-b", Ratings: []float64{3, 5}},
	}

	ranked := RankByAverage(movies)

	ids := make([]string, len(ranked))
	for i, m := range ranked {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"high", "tie-a", "tie-b", "low", "unrated"}, ids)
	assert.Equal(t, "unrated", movies[0].ID, "input order must not change")
	assert.Empty(t, ranked[4].Ratings)

	for i := 1; i < len(ranked); i++ {
		prev, _ := Average(ranked[i-1].Ratings)
		cur, _ := Average(ranked[i].Ratings)
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestFilters(t *testing.T) {
	movies := []models.Movie{
		{ID: "1", Title: "Alien", Director: "Ridley Scott", Genre: "Horror"},
		{ID: "2", Title: "Aliens", Director: "James Cameron", Genre: "Action"},
		{ID: "3", Title: "Gladiator", Director: "ridley scott", Genre: "HORROR"},
	}

	assert.Len(t, FilterByGenre(movies, "horror"), 2)
	assert.Len(t, FilterByDirector(movies, "Ridley Scott"), 2)
	assert.Len(t, FilterByTitleKeyword(movies, "ALIEN"), 2)
	assert.Len(t, FilterByTitleKeyword(movies, ""), 3)
	assert.Empty(t, FilterByGenre(movies, "horro"))
	assert.NotNil(t, FilterByGenre(movies, "drama"))
}
