package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/TadaisheChibondo/campus-accomodation/internal/middlewares"
	"github.com/TadaisheChibondo/campus-accomodation/internal/service"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type ReviewHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	Create(ctx *gin.Context)
}

type ReviewHandler struct {
	reviewService service.ReviewServiceI
	middlewares   middlewares.MiddlewaresI
}

func NewReviewHandler(reviewService service.ReviewServiceI, middlewares middlewares.MiddlewaresI) ReviewHandlerI {
	return &ReviewHandler{
		reviewService: reviewService,
		middlewares:   middlewares,
	}
}

func (reviewHandler *ReviewHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/properties/:id/reviews/", reviewHandler.middlewares.ValidUser(), reviewHandler.Create)
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (reviewHandler *ReviewHandler) Create(ctx *gin.Context) {
	propertyId, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	var request ReviewRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	created, err := reviewHandler.reviewService.CreateReview(viewerFrom(ctx), propertyId, request.Rating, request.Comment)
	if err == customerror.ErrInvalidRating {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Rating must be between 1 and 5."})
		return
	}
	if err == customerror.ErrAlreadyReviewed {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "You have already reviewed this property."})
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
