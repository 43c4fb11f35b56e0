package service

import (
	"context"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/repository"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/review"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/jackc/pgx/v5"
)

type ReviewServiceI interface {
	CreateReview(viewer *user.User, propertyId int64, rating int, comment string) (*review.Review, error)
}

type ReviewService struct {
	reviewRepo   repository.ReviewRepositoryI
	propertyRepo repository.PropertyRepositoryI
	host         string
	port         string
}

func NewReviewService(reviewRepo repository.ReviewRepositoryI, propertyRepo repository.PropertyRepositoryI, host string, port string) ReviewServiceI {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		propertyRepo: propertyRepo,
		host:         host,
		port:         port,
	}
}

func (reviewService *ReviewService) CreateReview(viewer *user.User, propertyId int64, rating int, comment string) (*review.Review, error) {
	// An out-of-range rating is a contract violation, not something to
	// silently clamp.
	if rating < review.MinRating || rating > review.MaxRating {
		return nil, customerror.ErrInvalidRating
	}
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	if _, err := reviewService.propertyRepo.GetProperty(ctx, propertyId); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("ReviewService.CreateReview")
		return nil, customErr
	}
	record := review.Review{
		PropertyId: propertyId,
		UserId:     viewer.UUID,
		User:       viewer.Username,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
	id, err := reviewService.reviewRepo.InsertReview(ctx, &record)
	if err == customerror.ErrAlreadyReviewed {
		return nil, err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("ReviewService.CreateReview")
		return nil, customErr
	}
	record.Id = id
	return &record, nil
}
