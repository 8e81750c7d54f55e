package models

import (
	"math"
	"strings"
)

const (
	MinRating = 0.0
	MaxRating = 5.0

	FullStar = "⭐"
	HalfStar = "½"
)

// StarCount splits a rating into whole stars and a trailing half star.
// The half star appears when the fractional part is at least 0.5.
func StarCount(rating float64) (full int, half bool) {
	if rating <= MinRating || math.IsNaN(rating) {
		return 0, false
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	whole := math.Floor(rating)
	return int(whole), rating-whole >= 0.5
}

func Stars(rating float64) string {
	full, half := StarCount(rating)
	s := strings.Repeat(FullStar, full)
	if half {
		s += HalfStar
	}
	return s
}
