package rating

import (
	"testing"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/review"
)

func reviewsWithRatings(ratings ...int) []review.Review {
	reviews := make([]review.Review, 0, len(ratings))
	for _, rating := range ratings {
		reviews = append(reviews, review.Review{Rating: rating})
	}
	return reviews
}

func TestAggregateEmpty(t *testing.T) {
	average, count := Aggregate(nil)
	if average != nil {
		t.Errorf("average = %v, want nil", *average)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
		count   int
	}{
		{"single review", []int{4}, 4.0, 1},
		{"two reviews", []int{5, 3}, 4.0, 2},
		{"rounds to one decimal", []int{5, 4, 4}, 4.3, 3},
		{"all minimum", []int{1, 1}, 1.0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			average, count := Aggregate(reviewsWithRatings(tt.ratings...))
			if average == nil {
				t.Fatal("average is nil")
			}
			if *average != tt.want {
				t.Errorf("average = %v, want %v", *average, tt.want)
			}
			if count != tt.count {
				t.Errorf("count = %d, want %d", count, tt.count)
			}
		})
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward, _ := Aggregate(reviewsWithRatings(5, 3, 4))
	backward, _ := Aggregate(reviewsWithRatings(4, 3, 5))
	if *forward != *backward {
		t.Errorf("order changed the average: %v vs %v", *forward, *backward)
	}
}
