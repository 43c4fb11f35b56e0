package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/TadaisheChibondo/campus-accomodation/internal/middlewares"
	"github.com/TadaisheChibondo/campus-accomodation/internal/service"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/discovery"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/property"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PropertyHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	List(ctx *gin.Context)
	Detail(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	MyListings(ctx *gin.Context)
	Favorites(ctx *gin.Context)
	ToggleFavorite(ctx *gin.Context)
	UploadImage(ctx *gin.Context)
	UpdateRoom(ctx *gin.Context)
}

type PropertyHandler struct {
	propertyService service.PropertyServiceI
	middlewares     middlewares.MiddlewaresI
}

func NewPropertyHandler(propertyService service.PropertyServiceI, middlewares middlewares.MiddlewaresI) PropertyHandlerI {
	return &PropertyHandler{
		propertyService: propertyService,
		middlewares:     middlewares,
	}
}

func (propertyHandler *PropertyHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/properties/", propertyHandler.middlewares.OptionalUser(), propertyHandler.List)
	group.POST("/properties/", propertyHandler.middlewares.ValidUser(), propertyHandler.Create)
	group.GET("/properties/my_listings/", propertyHandler.middlewares.ValidUser(), propertyHandler.MyListings)
	group.GET("/properties/favorites/", propertyHandler.middlewares.ValidUser(), propertyHandler.Favorites)
	group.GET("/properties/:id/", propertyHandler.middlewares.OptionalUser(), propertyHandler.Detail)
	group.PATCH("/properties/:id/", propertyHandler.middlewares.ValidUser(), propertyHandler.middlewares.MyProperty(), propertyHandler.Update)
	group.DELETE("/properties/:id/", propertyHandler.middlewares.ValidUser(), propertyHandler.middlewares.MyProperty(), propertyHandler.Delete)
	group.POST("/properties/:id/favorite/", propertyHandler.middlewares.ValidUser(), propertyHandler.ToggleFavorite)
	group.POST("/properties/:id/upload_image/", propertyHandler.middlewares.ValidUser(), propertyHandler.middlewares.MyProperty(), propertyHandler.UploadImage)
	group.PATCH("/rooms/:id/", propertyHandler.middlewares.ValidUser(), propertyHandler.UpdateRoom)
}

// viewerFrom returns the authenticated user when one was resolved, nil otherwise.
func viewerFrom(ctx *gin.Context) *user.User {
	value, exists := ctx.Get("user")
	if !exists {
		return nil
	}
	return value.(*user.User)
}

func criteriaFrom(ctx *gin.Context) (discovery.Criteria, error) {
	criteria := discovery.Criteria{
		Search: ctx.Query("search"),
		Gender: ctx.Query("gender"),
	}
	if raw := ctx.Query("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return criteria, err
		}
		criteria.MaxPrice = &maxPrice
	}
	if raw := ctx.Query("only_available"); raw == "true" || raw == "1" {
		criteria.OnlyAvailable = true
	}
	return criteria, nil
}

func (propertyHandler *PropertyHandler) List(ctx *gin.Context) {
	criteria, err := criteriaFrom(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid max_price."})
		return
	}
	properties, err := propertyHandler.propertyService.GetProperties(viewerFrom(ctx), criteria)
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, properties)
}

func (propertyHandler *PropertyHandler) Detail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	record, err := propertyHandler.propertyService.GetProperty(id, viewerFrom(ctx))
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, record)
}

type RoomRequest struct {
	Label       string `json:"label" binding:"required"`
	Capacity    int32  `json:"capacity"`
	IsAvailable *bool  `json:"is_available"`
}

type PropertyCreateRequest struct {
	Title            string           `json:"title" binding:"required"`
	Description      string           `json:"description"`
	PricePerMonth    decimal.Decimal  `json:"price_per_month"`
	DepositAmount    decimal.Decimal  `json:"deposit_amount"`
	Address          string           `json:"address" binding:"required"`
	Latitude         *float64         `json:"latitude"`
	Longitude        *float64         `json:"longitude"`
	GenderPreference string           `json:"gender_preference"`
	IsAvailable      *bool            `json:"is_available"`
	HasWifi          bool             `json:"has_wifi"`
	HasBorehole      bool             `json:"has_borehole"`
	HasSolar         bool             `json:"has_solar"`
	Curfew           *string          `json:"curfew"`
	VisitorsAllowed  bool             `json:"visitors_allowed"`
	Rooms            []RoomRequest    `json:"rooms"`
}

func (propertyHandler *PropertyHandler) Create(ctx *gin.Context) {
	var request PropertyCreateRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	if request.GenderPreference == "" {
		request.GenderPreference = property.GenderMixed
	}
	if !property.ValidGenderPreference(request.GenderPreference) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid gender_preference."})
		return
	}
	record := property.Property{
		Title:            request.Title,
		Description:      request.Description,
		PricePerMonth:    request.PricePerMonth,
		DepositAmount:    request.DepositAmount,
		Address:          request.Address,
		Latitude:         request.Latitude,
		Longitude:        request.Longitude,
		GenderPreference: request.GenderPreference,
		IsAvailable:      request.IsAvailable == nil || *request.IsAvailable,
		HasWifi:          request.HasWifi,
		HasBorehole:      request.HasBorehole,
		HasSolar:         request.HasSolar,
		Curfew:           request.Curfew,
		VisitorsAllowed:  request.VisitorsAllowed,
	}
	for _, room := range request.Rooms {
		record.Rooms = append(record.Rooms, property.Room{
			Label:       room.Label,
			Capacity:    room.Capacity,
			IsAvailable: room.IsAvailable == nil || *room.IsAvailable,
		})
	}
	owner := viewerFrom(ctx)
	id, err := propertyHandler.propertyService.InsertProperty(&record, owner)
	if err == customerror.ErrNotLandlord {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Only landlords can create listings."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	created, err := propertyHandler.propertyService.GetProperty(id, owner)
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

type PropertyUpdateRequest struct {
	Title            *string          `json:"title"`
	Description      *string          `json:"description"`
	PricePerMonth    *decimal.Decimal `json:"price_per_month"`
	DepositAmount    *decimal.Decimal `json:"deposit_amount"`
	Address          *string          `json:"address"`
	Latitude         *float64         `json:"latitude"`
	Longitude        *float64         `json:"longitude"`
	GenderPreference *string          `json:"gender_preference"`
	IsAvailable      *bool            `json:"is_available"`
	HasWifi          *bool            `json:"has_wifi"`
	HasBorehole      *bool            `json:"has_borehole"`
	HasSolar         *bool            `json:"has_solar"`
	Curfew           *string          `json:"curfew"`
	VisitorsAllowed  *bool            `json:"visitors_allowed"`
}

func (propertyHandler *PropertyHandler) Update(ctx *gin.Context) {
	var request PropertyUpdateRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	record := ctx.MustGet("property").(*property.Property)
	if request.Title != nil {
		record.Title = *request.Title
	}
	if request.Description != nil {
		record.Description = *request.Description
	}
	if request.PricePerMonth != nil {
		record.PricePerMonth = *request.PricePerMonth
	}
	if request.DepositAmount != nil {
		record.DepositAmount = *request.DepositAmount
	}
	if request.Address != nil {
		record.Address = *request.Address
	}
	if request.Latitude != nil {
		record.Latitude = request.Latitude
	}
	if request.Longitude != nil {
		record.Longitude = request.Longitude
	}
	if request.GenderPreference != nil {
		if !property.ValidGenderPreference(*request.GenderPreference) {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid gender_preference."})
			return
		}
		record.GenderPreference = *request.GenderPreference
	}
	if request.IsAvailable != nil {
		record.IsAvailable = *request.IsAvailable
	}
	if request.HasWifi != nil {
		record.HasWifi = *request.HasWifi
	}
	if request.HasBorehole != nil {
		record.HasBorehole = *request.HasBorehole
	}
	if request.HasSolar != nil {
		record.HasSolar = *request.HasSolar
	}
	if request.Curfew != nil {
		record.Curfew = request.Curfew
	}
	if request.VisitorsAllowed != nil {
		record.VisitorsAllowed = *request.VisitorsAllowed
	}
	viewer := viewerFrom(ctx)
	if err := propertyHandler.propertyService.UpdateProperty(record, viewer); err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	updated, err := propertyHandler.propertyService.GetProperty(record.Id, viewer)
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

func (propertyHandler *PropertyHandler) Delete(ctx *gin.Context) {
	record := ctx.MustGet("property").(*property.Property)
	if err := propertyHandler.propertyService.DeleteProperty(record.Id, viewerFrom(ctx)); err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (propertyHandler *PropertyHandler) MyListings(ctx *gin.Context) {
	properties, err := propertyHandler.propertyService.GetMyListings(viewerFrom(ctx))
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, properties)
}

func (propertyHandler *PropertyHandler) Favorites(ctx *gin.Context) {
	properties, err := propertyHandler.propertyService.GetFavorites(viewerFrom(ctx))
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, properties)
}

func (propertyHandler *PropertyHandler) ToggleFavorite(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	favorited, err := propertyHandler.propertyService.ToggleFavorite(viewerFrom(ctx), id)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"is_favorited": favorited})
}

func (propertyHandler *PropertyHandler) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "No image provided."})
		return
	}
	var roomId *int64
	if raw := ctx.PostForm("room"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid room."})
			return
		}
		roomId = &parsed
	}
	record := ctx.MustGet("property").(*property.Property)
	image, err := propertyHandler.propertyService.InsertPropertyImage(file, record, roomId)
	if err == customerror.ErrRoomMismatch {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Room does not belong to this property."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusCreated, image)
}

type RoomUpdateRequest struct {
	Label       *string `json:"label"`
	Capacity    *int32  `json:"capacity"`
	IsAvailable *bool   `json:"is_available"`
}

func (propertyHandler *PropertyHandler) UpdateRoom(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	var request RoomUpdateRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	room, err := propertyHandler.propertyService.GetRoom(id)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	if request.Label != nil {
		room.Label = *request.Label
	}
	if request.Capacity != nil {
		room.Capacity = *request.Capacity
	}
	if request.IsAvailable != nil {
		room.IsAvailable = *request.IsAvailable
	}
	err = propertyHandler.propertyService.UpdateRoom(room, viewerFrom(ctx))
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, room)
}
