package repository

import (
	"context"
	"errors"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/review"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetReviews(ctx context.Context, propertyId int64) ([]review.Review, error)
	InsertReview(ctx context.Context, review *review.Review) (int64, error)
}

type ReviewRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewReviewRepository(pool *pgxpool.Pool, host string, port string) ReviewRepositoryI {
	return &ReviewRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (reviewRepo *ReviewRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS review (
		id BIGSERIAL PRIMARY KEY,
		property_id BIGINT NOT NULL REFERENCES property(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, property_id)
	);`
	_, err := reviewRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("reviewRepo.CreateTables", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	createIndexQuery := `CREATE INDEX IF NOT EXISTS review_property_id_idx ON review(property_id);`
	_, err = reviewRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("reviewRepo.CreateTables", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	return nil
}

// GetReviews returns the property's reviews in submission order.
func (reviewRepo *ReviewRepository) GetReviews(ctx context.Context, propertyId int64) ([]review.Review, error) {
	query := `SELECT review.id, review.property_id, review.user_id, users.username, review.rating, review.comment, review.created_at
	FROM review JOIN users ON review.user_id = users.id
	WHERE review.property_id = $1 ORDER BY review.id`
	rows, err := reviewRepo.Pool.Query(ctx, query, propertyId)
	if err != nil {
		return nil, customerror.NewError("reviewRepo.GetReviews", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	defer rows.Close()
	reviews := []review.Review{}
	for rows.Next() {
		var record review.Review
		err := rows.Scan(&record.Id, &record.PropertyId, &record.UserId, &record.User, &record.Rating, &record.Comment, &record.CreatedAt)
		if err != nil {
			return nil, customerror.NewError("reviewRepo.GetReviews", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
		}
		reviews = append(reviews, record)
	}
	return reviews, nil
}

func (reviewRepo *ReviewRepository) InsertReview(ctx context.Context, record *review.Review) (int64, error) {
	query := `INSERT INTO review (property_id, user_id, rating, comment) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	err := reviewRepo.Pool.QueryRow(ctx, query, record.PropertyId, record.UserId, record.Rating, record.Comment).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return 0, customerror.ErrAlreadyReviewed
			}
		}
		return 0, customerror.NewError("reviewRepo.InsertReview", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	return id, nil
}
