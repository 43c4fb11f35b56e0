package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/middlewares"
	"github.com/TadaisheChibondo/campus-accomodation/internal/service"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/booking"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type BookingHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	Create(ctx *gin.Context)
	MyBookings(ctx *gin.Context)
	ManagedBookings(ctx *gin.Context)
	SetStatus(ctx *gin.Context)
	Cancel(ctx *gin.Context)
}

type BookingHandler struct {
	bookingService service.BookingServiceI
	middlewares    middlewares.MiddlewaresI
}

func NewBookingHandler(bookingService service.BookingServiceI, middlewares middlewares.MiddlewaresI) BookingHandlerI {
	return &BookingHandler{
		bookingService: bookingService,
		middlewares:    middlewares,
	}
}

func (bookingHandler *BookingHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/bookings/", bookingHandler.middlewares.ValidUser(), bookingHandler.Create)
	group.GET("/bookings/", bookingHandler.middlewares.ValidUser(), bookingHandler.MyBookings)
	group.GET("/bookings/manage/", bookingHandler.middlewares.ValidUser(), bookingHandler.ManagedBookings)
	group.PATCH("/bookings/:id/", bookingHandler.middlewares.ValidUser(), bookingHandler.SetStatus)
	group.DELETE("/bookings/:id/", bookingHandler.middlewares.ValidUser(), bookingHandler.Cancel)
}

type BookingCreateRequest struct {
	Property   int64  `json:"property" binding:"required"`
	Room       *int64 `json:"room"`
	MoveInDate string `json:"move_in_date" binding:"required"`
	Message    string `json:"message"`
}

func (bookingHandler *BookingHandler) Create(ctx *gin.Context) {
	var request BookingCreateRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	moveInDate, err := time.Parse(time.DateOnly, request.MoveInDate)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid move_in_date."})
		return
	}
	record := booking.Booking{
		PropertyId: request.Property,
		RoomId:     request.Room,
		MoveInDate: moveInDate,
		Message:    request.Message,
	}
	created, err := bookingHandler.bookingService.CreateBooking(viewerFrom(ctx), &record)
	if err == customerror.ErrNotStudent {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Only students can request bookings."})
		return
	}
	if err == customerror.ErrRoomMismatch {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Room does not belong to this property."})
		return
	}
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

func (bookingHandler *BookingHandler) MyBookings(ctx *gin.Context) {
	bookings, err := bookingHandler.bookingService.GetMyBookings(viewerFrom(ctx))
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, bookings)
}

func (bookingHandler *BookingHandler) ManagedBookings(ctx *gin.Context) {
	bookings, err := bookingHandler.bookingService.GetManagedBookings(viewerFrom(ctx))
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, bookings)
}

type BookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (bookingHandler *BookingHandler) SetStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	var request BookingStatusRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	if !booking.ValidStatus(request.Status) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid status."})
		return
	}
	updated, err := bookingHandler.bookingService.SetStatus(viewerFrom(ctx), id, request.Status)
	if err == customerror.ErrNotLandlord {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

func (bookingHandler *BookingHandler) Cancel(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	err = bookingHandler.bookingService.CancelBooking(viewerFrom(ctx), id)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.Status(http.StatusNoContent)
}
