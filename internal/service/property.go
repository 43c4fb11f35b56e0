package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/repository"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/discovery"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/geo"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/property"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/rating"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PropertyServiceI interface {
	GetProperties(viewer *user.User, criteria discovery.Criteria) ([]property.Property, error)
	GetProperty(id int64, viewer *user.User) (*property.Property, error)
	GetMyListings(landlord *user.User) ([]property.Property, error)
	GetFavorites(viewer *user.User) ([]property.Property, error)
	ToggleFavorite(viewer *user.User, propertyId int64) (bool, error)
	InsertProperty(record *property.Property, owner *user.User) (int64, error)
	UpdateProperty(record *property.Property, user *user.User) error
	DeleteProperty(id int64, user *user.User) error
	InsertPropertyImage(file *multipart.FileHeader, record *property.Property, roomId *int64) (*property.Image, error)
	GetRoom(id int64) (*property.Room, error)
	UpdateRoom(room *property.Room, user *user.User) error
}

type PropertyService struct {
	propertyRepo repository.PropertyRepositoryI
	reviewRepo   repository.ReviewRepositoryI
	favoriteRepo repository.FavoriteRepositoryI
	campus       geo.Point
	host         string
	port         string
	mainUrl      string
}

func NewPropertyService(propertyRepo repository.PropertyRepositoryI, reviewRepo repository.ReviewRepositoryI, favoriteRepo repository.FavoriteRepositoryI, campus geo.Point, host string, port string, mainUrl string) PropertyServiceI {
	return &PropertyService{
		propertyRepo: propertyRepo,
		reviewRepo:   reviewRepo,
		favoriteRepo: favoriteRepo,
		campus:       campus,
		host:         host,
		port:         port,
		mainUrl:      mainUrl,
	}
}

// loadNested fills the images, rooms and reviews of a fetched property.
func (propertyService *PropertyService) loadNested(ctx context.Context, record *property.Property) error {
	images, err := propertyService.propertyRepo.GetPropertyImages(ctx, record.Id)
	if err != nil {
		return err
	}
	record.Images = images
	rooms, err := propertyService.propertyRepo.GetRooms(ctx, record.Id)
	if err != nil {
		return err
	}
	record.Rooms = rooms
	reviews, err := propertyService.reviewRepo.GetReviews(ctx, record.Id)
	if err != nil {
		return err
	}
	record.Reviews = reviews
	return nil
}

// annotate attaches the derived fields: campus distance, walking time,
// review aggregate and the viewer's favorite flag.
func (propertyService *PropertyService) annotate(record *property.Property, favoriteIds map[int64]bool) {
	record.Distance, record.WalkingMinutes = geo.Annotate(record.Latitude, record.Longitude, propertyService.campus)
	record.AverageRating, record.ReviewCount = rating.Aggregate(record.Reviews)
	record.IsFavorited = favoriteIds[record.Id]
}

func (propertyService *PropertyService) favoriteIdsFor(ctx context.Context, viewer *user.User) (map[int64]bool, error) {
	if viewer == nil {
		return map[int64]bool{}, nil
	}
	return propertyService.favoriteRepo.GetFavoriteIds(ctx, viewer.UUID)
}

func (propertyService *PropertyService) collectProperties(ctx context.Context, filters map[string]any, viewer *user.User) ([]property.Property, error) {
	properties, err := propertyService.propertyRepo.GetProperties(ctx, filters)
	if err != nil {
		return nil, err
	}
	favoriteIds, err := propertyService.favoriteIdsFor(ctx, viewer)
	if err != nil {
		return nil, err
	}
	for i := range properties {
		if err := propertyService.loadNested(ctx, &properties[i]); err != nil {
			return nil, err
		}
		propertyService.annotate(&properties[i], favoriteIds)
	}
	return properties, nil
}

func (propertyService *PropertyService) GetProperties(viewer *user.User, criteria discovery.Criteria) ([]property.Property, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	properties, err := propertyService.collectProperties(ctx, map[string]any{}, viewer)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetProperties")
		return nil, customErr
	}
	return discovery.Apply(properties, criteria), nil
}

func (propertyService *PropertyService) GetProperty(id int64, viewer *user.User) (*property.Property, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	record, err := propertyService.propertyRepo.GetProperty(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetProperty")
		return nil, customErr
	}
	if err := propertyService.loadNested(ctx, record); err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetProperty")
		return nil, customErr
	}
	favoriteIds, err := propertyService.favoriteIdsFor(ctx, viewer)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetProperty")
		return nil, customErr
	}
	propertyService.annotate(record, favoriteIds)
	return record, nil
}

func (propertyService *PropertyService) GetMyListings(landlord *user.User) ([]property.Property, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	filters := map[string]any{"landlord_id": landlord.UUID}
	properties, err := propertyService.collectProperties(ctx, filters, landlord)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetMyListings")
		return nil, customErr
	}
	return properties, nil
}

func (propertyService *PropertyService) GetFavorites(viewer *user.User) ([]property.Property, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	favoriteIds, err := propertyService.favoriteRepo.GetFavoriteIds(ctx, viewer.UUID)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetFavorites")
		return nil, customErr
	}
	if len(favoriteIds) == 0 {
		return []property.Property{}, nil
	}
	ids := make([]int64, 0, len(favoriteIds))
	for id := range favoriteIds {
		ids = append(ids, id)
	}
	properties, err := propertyService.collectProperties(ctx, map[string]any{"ids": ids}, viewer)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetFavorites")
		return nil, customErr
	}
	return properties, nil
}

// ToggleFavorite flips the viewer's favorite relation and returns the new state.
func (propertyService *PropertyService) ToggleFavorite(viewer *user.User, propertyId int64) (bool, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	if _, err := propertyService.propertyRepo.GetProperty(ctx, propertyId); err != nil {
		if err == pgx.ErrNoRows {
			return false, err
		}
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.ToggleFavorite")
		return false, customErr
	}
	err := propertyService.favoriteRepo.DeleteFavorite(ctx, viewer.UUID, propertyId)
	if err == nil {
		return false, nil
	}
	if err != pgx.ErrNoRows {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.ToggleFavorite")
		return false, customErr
	}
	if err := propertyService.favoriteRepo.InsertFavorite(ctx, viewer.UUID, propertyId); err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.ToggleFavorite")
		return false, customErr
	}
	return true, nil
}

func (propertyService *PropertyService) InsertProperty(record *property.Property, owner *user.User) (int64, error) {
	if owner.Role != user.RoleLandlord && !owner.IsSuperUser {
		return 0, customerror.ErrNotLandlord
	}
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	record.LandlordId = owner.UUID
	id, err := propertyService.propertyRepo.InsertProperty(ctx, record)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.InsertProperty")
		return 0, customErr
	}
	for i := range record.Rooms {
		record.Rooms[i].PropertyId = id
		roomId, err := propertyService.propertyRepo.InsertRoom(ctx, &record.Rooms[i])
		if err != nil {
			customErr := err.(customerror.CustomError)
			customErr.AppendModule("PropertyService.InsertProperty")
			return 0, customErr
		}
		record.Rooms[i].Id = roomId
	}
	return id, nil
}

func (propertyService *PropertyService) UpdateProperty(record *property.Property, user *user.User) error {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	err := propertyService.propertyRepo.UpdateProperty(ctx, record, user)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.UpdateProperty")
		return customErr
	}
	return nil
}

func (propertyService *PropertyService) DeleteProperty(id int64, user *user.User) error {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	err := propertyService.propertyRepo.DeleteProperty(ctx, id, user)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.DeleteProperty")
		return customErr
	}
	go propertyService.removeDirectory(filepath.Join(".", "media", "properties", strconv.FormatInt(id, 10)))
	return nil
}

func (propertyService *PropertyService) InsertPropertyImage(file *multipart.FileHeader, record *property.Property, roomId *int64) (*property.Image, error) {
	fileUUID := uuid.New().String()
	timestamp := time.Now().Unix()
	fileExt := filepath.Ext(file.Filename)
	if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" && fileExt != ".webp" {
		return nil, customerror.NewError("PropertyService.InsertPropertyImage.FileExt", propertyService.host+":"+propertyService.port, "Invalid file extension")
	}
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	if roomId != nil {
		room, err := propertyService.propertyRepo.GetRoom(ctx, *roomId)
		if err == pgx.ErrNoRows {
			return nil, customerror.ErrRoomMismatch
		}
		if err != nil {
			customErr := err.(customerror.CustomError)
			customErr.AppendModule("PropertyService.InsertPropertyImage")
			return nil, customErr
		}
		if room.PropertyId != record.Id {
			return nil, customerror.ErrRoomMismatch
		}
	}
	uploadPath := filepath.Join(".", "media", "properties", strconv.FormatInt(record.Id, 10))
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		return nil, customerror.NewError("PropertyService.InsertPropertyImage.MkdirAll", propertyService.host+":"+propertyService.port, err.Error())
	}
	newFilename := fmt.Sprintf("%s_%d%s", fileUUID, timestamp, fileExt)
	fullPath := filepath.Join(uploadPath, newFilename)
	src, err := file.Open()
	if err != nil {
		return nil, customerror.NewError("PropertyService.InsertPropertyImage.Open", propertyService.host+":"+propertyService.port, err.Error())
	}
	defer src.Close()
	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, customerror.NewError("PropertyService.InsertPropertyImage.Create", propertyService.host+":"+propertyService.port, err.Error())
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	if err != nil {
		return nil, customerror.NewError("PropertyService.InsertPropertyImage.Copy", propertyService.host+":"+propertyService.port, err.Error())
	}
	image := property.Image{
		PropertyId: record.Id,
		Url:        fmt.Sprintf("%s/media/properties/%d/%s", propertyService.mainUrl, record.Id, newFilename),
		Filename:   newFilename,
		RoomId:     roomId,
		UploadedAt: time.Now(),
	}
	imageId, err := propertyService.propertyRepo.InsertPropertyImage(ctx, &image)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.InsertPropertyImage")
		return nil, customErr
	}
	image.Id = imageId
	return &image, nil
}

func (propertyService *PropertyService) GetRoom(id int64) (*property.Room, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	room, err := propertyService.propertyRepo.GetRoom(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.GetRoom")
		return nil, customErr
	}
	return room, nil
}

func (propertyService *PropertyService) UpdateRoom(room *property.Room, user *user.User) error {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	err := propertyService.propertyRepo.UpdateRoom(ctx, room, user)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("PropertyService.UpdateRoom")
		return customErr
	}
	return nil
}

func (propertyService *PropertyService) removeDirectory(path string) {
	if err := os.RemoveAll(path); err != nil {
		log.Printf("ERROR|PropertyService.removeDirectory:%s", err.Error())
	}
}
