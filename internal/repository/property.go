package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/property"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PropertyRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetProperties(ctx context.Context, filters map[string]any) ([]property.Property, error)
	GetProperty(ctx context.Context, id int64) (*property.Property, error)
	InsertProperty(ctx context.Context, property *property.Property) (int64, error)
	UpdateProperty(ctx context.Context, property *property.Property, user *user.User) error
	DeleteProperty(ctx context.Context, id int64, user *user.User) error

	GetPropertyImages(ctx context.Context, propertyId int64) ([]property.Image, error)
	InsertPropertyImage(ctx context.Context, image *property.Image) (int64, error)

	GetRoom(ctx context.Context, id int64) (*property.Room, error)
	GetRooms(ctx context.Context, propertyId int64) ([]property.Room, error)
	InsertRoom(ctx context.Context, room *property.Room) (int64, error)
	UpdateRoom(ctx context.Context, room *property.Room, user *user.User) error
}

type PropertyRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewPropertyRepository(pool *pgxpool.Pool, host string, port string) PropertyRepositoryI {
	return &PropertyRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (propertyRepo *PropertyRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS property (
		id BIGSERIAL PRIMARY KEY,
		landlord_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price_per_month NUMERIC(10, 2) NOT NULL,
		deposit_amount NUMERIC(10, 2) DEFAULT 0,
		address TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		gender_preference TEXT DEFAULT 'Mixed',
		is_available BOOLEAN DEFAULT TRUE,
		has_wifi BOOLEAN DEFAULT FALSE,
		has_borehole BOOLEAN DEFAULT FALSE,
		has_solar BOOLEAN DEFAULT FALSE,
		curfew TEXT,
		visitors_allowed BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := propertyRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("propertyRepo.CreateTables", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}

	createRoomQuery := `
	CREATE TABLE IF NOT EXISTS room (
		id BIGSERIAL PRIMARY KEY,
		property_id BIGINT NOT NULL REFERENCES property(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		capacity INTEGER DEFAULT 1,
		is_available BOOLEAN DEFAULT TRUE
	);`
	_, err = propertyRepo.Pool.Exec(ctx, createRoomQuery)
	if err != nil {
		return customerror.NewError("propertyRepo.CreateTables", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}

	createImageQuery := `
	CREATE TABLE IF NOT EXISTS property_image (
		id BIGSERIAL PRIMARY KEY,
		property_id BIGINT NOT NULL REFERENCES property(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		filename TEXT NOT NULL DEFAULT '',
		room_id BIGINT REFERENCES room(id) ON DELETE SET NULL,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err = propertyRepo.Pool.Exec(ctx, createImageQuery)
	if err != nil {
		return customerror.NewError("propertyRepo.CreateTables", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}

	createIndexQuery := `CREATE INDEX IF NOT EXISTS property_landlord_id_idx ON property(landlord_id);`
	_, err = propertyRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("propertyRepo.CreateTables", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}

	createIndexQuery = `CREATE INDEX IF NOT EXISTS property_image_property_id_idx ON property_image(property_id);`
	_, err = propertyRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("propertyRepo.CreateTables", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}

	createIndexQuery = `CREATE INDEX IF NOT EXISTS room_property_id_idx ON room(property_id);`
	_, err = propertyRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("propertyRepo.CreateTables", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	return nil
}

const propertySelect = `SELECT property.id, property.landlord_id, property.title, property.description,
	property.price_per_month::text, property.deposit_amount::text, property.address,
	property.latitude, property.longitude, property.gender_preference, property.is_available,
	property.has_wifi, property.has_borehole, property.has_solar, property.curfew,
	property.visitors_allowed, property.created_at,
	users.username, users.phone_number, users.bio, users.company_name, users.profile_picture
	FROM property JOIN users ON property.landlord_id = users.id`

func scanProperty(row pgx.Row) (*property.Property, error) {
	var record property.Property
	var price string
	var deposit string
	err := row.Scan(
		&record.Id,
		&record.LandlordId,
		&record.Title,
		&record.Description,
		&price,
		&deposit,
		&record.Address,
		&record.Latitude,
		&record.Longitude,
		&record.GenderPreference,
		&record.IsAvailable,
		&record.HasWifi,
		&record.HasBorehole,
		&record.HasSolar,
		&record.Curfew,
		&record.VisitorsAllowed,
		&record.CreatedAt,
		&record.LandlordName,
		&record.LandlordPhone,
		&record.LandlordBio,
		&record.LandlordCompany,
		&record.LandlordPicture,
	)
	if err != nil {
		return nil, err
	}
	record.PricePerMonth, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	record.DepositAmount, err = decimal.NewFromString(deposit)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (propertyRepo *PropertyRepository) GetProperties(ctx context.Context, filters map[string]any) ([]property.Property, error) {
	properties := []property.Property{}
	filtersCount := 1
	query := propertySelect + ` WHERE property.id IS NOT NULL`
	params := []any{}
	if filters["landlord_id"] != nil {
		query += " AND property.landlord_id = $" + fmt.Sprint(filtersCount)
		params = append(params, filters["landlord_id"])
		filtersCount++
	}
	if filters["ids"] != nil {
		query += " AND property.id = ANY($" + fmt.Sprint(filtersCount) + ")"
		params = append(params, filters["ids"])
		filtersCount++
	}
	query += ` ORDER BY property.created_at DESC, property.id DESC`
	rows, err := propertyRepo.Pool.Query(ctx, query, params...)
	if err != nil {
		return nil, customerror.NewError("propertyRepo.GetProperties", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		record, err := scanProperty(rows)
		if err != nil {
			return nil, customerror.NewError("propertyRepo.GetProperties", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
		}
		properties = append(properties, *record)
	}
	return properties, nil
}

func (propertyRepo *PropertyRepository) GetProperty(ctx context.Context, id int64) (*property.Property, error) {
	query := propertySelect + ` WHERE property.id = $1`
	record, err := scanProperty(propertyRepo.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("propertyRepo.GetProperty", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	return record, nil
}

func (propertyRepo *PropertyRepository) InsertProperty(ctx context.Context, record *property.Property) (int64, error) {
	query := `INSERT INTO property (landlord_id, title, description, price_per_month, deposit_amount, address,
	latitude, longitude, gender_preference, is_available, has_wifi, has_borehole, has_solar, curfew, visitors_allowed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	var id int64
	err := propertyRepo.Pool.QueryRow(ctx, query,
		record.LandlordId,
		record.Title,
		record.Description,
		record.PricePerMonth.String(),
		record.DepositAmount.String(),
		record.Address,
		record.Latitude,
		record.Longitude,
		record.GenderPreference,
		record.IsAvailable,
		record.HasWifi,
		record.HasBorehole,
		record.HasSolar,
		record.Curfew,
		record.VisitorsAllowed,
	).Scan(&id)
	if err != nil {
		return 0, customerror.NewError("propertyRepo.InsertProperty", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	return id, nil
}

func (propertyRepo *PropertyRepository) UpdateProperty(ctx context.Context, record *property.Property, user *user.User) error {
	query := `UPDATE property SET title = $1, description = $2, price_per_month = $3, deposit_amount = $4,
	address = $5, latitude = $6, longitude = $7, gender_preference = $8, is_available = $9,
	has_wifi = $10, has_borehole = $11, has_solar = $12, curfew = $13, visitors_allowed = $14 WHERE id = $15`
	args := []any{
		record.Title,
		record.Description,
		record.PricePerMonth.String(),
		record.DepositAmount.String(),
		record.Address,
		record.Latitude,
		record.Longitude,
		record.GenderPreference,
		record.IsAvailable,
		record.HasWifi,
		record.HasBorehole,
		record.HasSolar,
		record.Curfew,
		record.VisitorsAllowed,
		record.Id,
	}
	if !user.IsSuperUser {
		query += ` AND landlord_id = $16`
		args = append(args, user.UUID)
	}
	command, err := propertyRepo.Pool.Exec(ctx, query, args...)
	if err != nil {
		return customerror.NewError("propertyRepo.UpdateProperty", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (propertyRepo *PropertyRepository) DeleteProperty(ctx context.Context, id int64, user *user.User) error {
	args := []any{id}
	query := `DELETE FROM property WHERE id = $1`
	if !user.IsSuperUser {
		query += ` AND landlord_id = $2`
		args = append(args, user.UUID)
	}
	command, err := propertyRepo.Pool.Exec(ctx, query, args...)
	if err != nil {
		return customerror.NewError("propertyRepo.DeleteProperty", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (propertyRepo *PropertyRepository) GetPropertyImages(ctx context.Context, propertyId int64) ([]property.Image, error) {
	query := `SELECT property_image.id, property_image.property_id, property_image.url, property_image.filename,
	property_image.room_id, room.label, property_image.uploaded_at
	FROM property_image LEFT JOIN room ON property_image.room_id = room.id
	WHERE property_image.property_id = $1 ORDER BY property_image.id`
	rows, err := propertyRepo.Pool.Query(ctx, query, propertyId)
	if err != nil {
		return nil, customerror.NewError("propertyRepo.GetPropertyImages", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	defer rows.Close()
	images := []property.Image{}
	for rows.Next() {
		var image property.Image
		err := rows.Scan(&image.Id, &image.PropertyId, &image.Url, &image.Filename, &image.RoomId, &image.RoomLabel, &image.UploadedAt)
		if err != nil {
			return nil, customerror.NewError("propertyRepo.GetPropertyImages", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
		}
		images = append(images, image)
	}
	return images, nil
}

func (propertyRepo *PropertyRepository) InsertPropertyImage(ctx context.Context, image *property.Image) (int64, error) {
	query := `INSERT INTO property_image (property_id, url, filename, room_id) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	err := propertyRepo.Pool.QueryRow(ctx, query, image.PropertyId, image.Url, image.Filename, image.RoomId).Scan(&id)
	if err != nil {
		return 0, customerror.NewError("propertyRepo.InsertPropertyImage", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	return id, nil
}

func (propertyRepo *PropertyRepository) GetRoom(ctx context.Context, id int64) (*property.Room, error) {
	var room property.Room
	query := `SELECT id, property_id, label, capacity, is_available FROM room WHERE id = $1`
	err := propertyRepo.Pool.QueryRow(ctx, query, id).Scan(&room.Id, &room.PropertyId, &room.Label, &room.Capacity, &room.IsAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("propertyRepo.GetRoom", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	return &room, nil
}

func (propertyRepo *PropertyRepository) GetRooms(ctx context.Context, propertyId int64) ([]property.Room, error) {
	query := `SELECT id, property_id, label, capacity, is_available FROM room WHERE property_id = $1 ORDER BY id`
	rows, err := propertyRepo.Pool.Query(ctx, query, propertyId)
	if err != nil {
		return nil, customerror.NewError("propertyRepo.GetRooms", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	defer rows.Close()
	rooms := []property.Room{}
	for rows.Next() {
		var room property.Room
		err := rows.Scan(&room.Id, &room.PropertyId, &room.Label, &room.Capacity, &room.IsAvailable)
		if err != nil {
			return nil, customerror.NewError("propertyRepo.GetRooms", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (propertyRepo *PropertyRepository) InsertRoom(ctx context.Context, room *property.Room) (int64, error) {
	query := `INSERT INTO room (property_id, label, capacity, is_available) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	err := propertyRepo.Pool.QueryRow(ctx, query, room.PropertyId, room.Label, room.Capacity, room.IsAvailable).Scan(&id)
	if err != nil {
		return 0, customerror.NewError("propertyRepo.InsertRoom", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	return id, nil
}

func (propertyRepo *PropertyRepository) UpdateRoom(ctx context.Context, room *property.Room, user *user.User) error {
	query := `UPDATE room SET label = $1, capacity = $2, is_available = $3
	FROM property WHERE room.property_id = property.id AND room.id = $4`
	args := []any{room.Label, room.Capacity, room.IsAvailable, room.Id}
	if !user.IsSuperUser {
		query += ` AND property.landlord_id = $5`
		args = append(args, user.UUID)
	}
	command, err := propertyRepo.Pool.Exec(ctx, query, args...)
	if err != nil {
		return customerror.NewError("propertyRepo.UpdateRoom", propertyRepo.Host+":"+propertyRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
