package repository

import (
	"context"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetFavoriteIds(ctx context.Context, userId uuid.UUID) (map[int64]bool, error)
	InsertFavorite(ctx context.Context, userId uuid.UUID, propertyId int64) error
	DeleteFavorite(ctx context.Context, userId uuid.UUID, propertyId int64) error
}

type FavoriteRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewFavoriteRepository(pool *pgxpool.Pool, host string, port string) FavoriteRepositoryI {
	return &FavoriteRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (favoriteRepo *FavoriteRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS favorite (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		property_id BIGINT NOT NULL REFERENCES property(id) ON DELETE CASCADE,
		UNIQUE (user_id, property_id)
	);`
	_, err := favoriteRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("favoriteRepo.CreateTables", favoriteRepo.Host+":"+favoriteRepo.Port, err.Error())
	}
	createIndexQuery := `CREATE INDEX IF NOT EXISTS favorite_user_id_idx ON favorite(user_id);`
	_, err = favoriteRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("favoriteRepo.CreateTables", favoriteRepo.Host+":"+favoriteRepo.Port, err.Error())
	}
	return nil
}

func (favoriteRepo *FavoriteRepository) GetFavoriteIds(ctx context.Context, userId uuid.UUID) (map[int64]bool, error) {
	query := `SELECT property_id FROM favorite WHERE user_id = $1`
	rows, err := favoriteRepo.Pool.Query(ctx, query, userId)
	if err != nil {
		return nil, customerror.NewError("favoriteRepo.GetFavoriteIds", favoriteRepo.Host+":"+favoriteRepo.Port, err.Error())
	}
	defer rows.Close()
	ids := map[int64]bool{}
	for rows.Next() {
		var propertyId int64
		if err := rows.Scan(&propertyId); err != nil {
			return nil, customerror.NewError("favoriteRepo.GetFavoriteIds", favoriteRepo.Host+":"+favoriteRepo.Port, err.Error())
		}
		ids[propertyId] = true
	}
	return ids, nil
}

func (favoriteRepo *FavoriteRepository) InsertFavorite(ctx context.Context, userId uuid.UUID, propertyId int64) error {
	query := `INSERT INTO favorite (user_id, property_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := favoriteRepo.Pool.Exec(ctx, query, userId, propertyId)
	if err != nil {
		return customerror.NewError("favoriteRepo.InsertFavorite", favoriteRepo.Host+":"+favoriteRepo.Port, err.Error())
	}
	return nil
}

func (favoriteRepo *FavoriteRepository) DeleteFavorite(ctx context.Context, userId uuid.UUID, propertyId int64) error {
	query := `DELETE FROM favorite WHERE user_id = $1 AND property_id = $2`
	command, err := favoriteRepo.Pool.Exec(ctx, query, userId, propertyId)
	if err != nil {
		return customerror.NewError("favoriteRepo.DeleteFavorite", favoriteRepo.Host+":"+favoriteRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
