package repository

import (
	"context"
	"errors"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/config"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserByCredentials(ctx context.Context, field string, value any) (*user.User, error)
	InsertUser(ctx context.Context, user *user.User) error
	UpdateUser(ctx context.Context, user *user.User) error
	UpdateUserSensetive(ctx context.Context, user *user.User) error
}

type UserRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewUserRepository(pool *pgxpool.Pool, appConfig *config.Config) UserRepositoryI {
	return &UserRepository{
		Pool: pool,
		Host: appConfig.WebHost,
		Port: appConfig.WebPort,
	}
}

func (userRepo *UserRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id                UUID PRIMARY KEY,
		username          TEXT UNIQUE NOT NULL,
		email             TEXT UNIQUE NOT NULL,
		password_hash     TEXT DEFAULT '',
		role              TEXT DEFAULT 'student',
		phone_number      TEXT DEFAULT '',
		program           TEXT DEFAULT '',
		year_of_study     TEXT DEFAULT '',
		bio               TEXT DEFAULT '',
		company_name      TEXT DEFAULT '',
		profile_picture   TEXT DEFAULT '',
		profile_file_name TEXT DEFAULT '',
		reset_hash        TEXT DEFAULT '',
		reset_hash_created_at TIMESTAMP,
		reset_hash_attempts INTEGER DEFAULT 0,
		jwt_version       INTEGER DEFAULT 0,
		is_superuser      BOOLEAN DEFAULT FALSE,
		created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := userRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("userRepo.CreateTables", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	createIndexQuery := `CREATE INDEX IF NOT EXISTS users_username_idx ON users(username);`
	_, err = userRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("userRepo.CreateTables", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	return nil
}

const userColumns = `id, username, email, password_hash, role, phone_number, program, year_of_study, bio, company_name, profile_picture, profile_file_name, reset_hash, reset_hash_created_at, reset_hash_attempts, jwt_version, is_superuser, created_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var user user.User
	err := row.Scan(
		&user.UUID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.PhoneNumber,
		&user.Program,
		&user.YearOfStudy,
		&user.Bio,
		&user.CompanyName,
		&user.ProfilePicture,
		&user.ProfileFileName,
		&user.ResetHash,
		&user.ResetHashCreatedAt,
		&user.ResetHashAttempts,
		&user.JWTVersion,
		&user.IsSuperUser,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (userRepo *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	user, err := scanUser(userRepo.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("userRepo.GetUser", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	return user, nil
}

/*
field is interpolated into the query: pass it only as a hardcoded column
name, never from user input.
*/
func (userRepo *UserRepository) GetUserByCredentials(ctx context.Context, field string, value any) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + field + `=$1`
	user, err := scanUser(userRepo.Pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("userRepo.GetUserByCredentials", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	return user, nil
}

func (userRepo *UserRepository) InsertUser(ctx context.Context, user *user.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, role, phone_number, program, year_of_study, bio, company_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := userRepo.Pool.Exec(ctx, query,
		user.UUID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.PhoneNumber,
		user.Program,
		user.YearOfStudy,
		user.Bio,
		user.CompanyName,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return customerror.ErrUserAlreadyExists
			}
		}
		return customerror.NewError("userRepo.InsertUser", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	return nil
}

func (userRepo *UserRepository) UpdateUser(ctx context.Context, user *user.User) error {
	query := `UPDATE users SET email = $1, phone_number = $2, program = $3, year_of_study = $4, bio = $5,
	company_name = $6, profile_picture = $7, profile_file_name = $8, reset_hash = $9, reset_hash_created_at = $10, reset_hash_attempts = $11
	WHERE id = $12`
	command, err := userRepo.Pool.Exec(ctx, query,
		user.Email,
		user.PhoneNumber,
		user.Program,
		user.YearOfStudy,
		user.Bio,
		user.CompanyName,
		user.ProfilePicture,
		user.ProfileFileName,
		user.ResetHash,
		user.ResetHashCreatedAt,
		user.ResetHashAttempts,
		user.UUID,
	)
	if err != nil {
		return customerror.NewError("userRepo.UpdateUser", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (userRepo *UserRepository) UpdateUserSensetive(ctx context.Context, user *user.User) error {
	query := `UPDATE users SET password_hash = $1, jwt_version = $2 WHERE id = $3`
	command, err := userRepo.Pool.Exec(ctx, query, user.PasswordHash, user.JWTVersion, user.UUID)
	if err != nil {
		return customerror.NewError("userRepo.UpdateUserSensetive", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
