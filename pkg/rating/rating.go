package rating

import (
	"math"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/review"
)

// Aggregate computes the average rating (one decimal place) and the review
// count. An empty or nil review list yields a nil average so callers can
// render "No reviews yet" instead of a zero score.
func Aggregate(reviews []review.Review) (*float64, int) {
	if len(reviews) == 0 {
		return nil, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	average := math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return &average, len(reviews)
}
