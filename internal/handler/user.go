package handler

import (
	"log"
	"net/http"

	"github.com/TadaisheChibondo/campus-accomodation/internal/middlewares"
	"github.com/TadaisheChibondo/campus-accomodation/internal/service"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/gin-gonic/gin"
)

type UserHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	Info(ctx *gin.Context)
	UpdateInfo(ctx *gin.Context)
	UploadPicture(ctx *gin.Context)
}

type UserHandler struct {
	userService service.UserServiceI
	middlewares middlewares.MiddlewaresI
}

func NewUserHandler(userService service.UserServiceI, middlewares middlewares.MiddlewaresI) UserHandlerI {
	return &UserHandler{
		userService: userService,
		middlewares: middlewares,
	}
}

func (userHandler *UserHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/user/info/", userHandler.middlewares.ValidUser(), userHandler.Info)
	group.PATCH("/user/info/", userHandler.middlewares.ValidUser(), userHandler.UpdateInfo)
	group.POST("/user/upload_picture/", userHandler.middlewares.ValidUser(), userHandler.UploadPicture)
}

func profileBody(account *user.User) gin.H {
	return gin.H{
		"username":        account.Username,
		"email":           account.Email,
		"role":            account.Role,
		"profile_picture": account.ProfilePicture,
		"phone_number":    account.PhoneNumber,
		"program":         account.Program,
		"year_of_study":   account.YearOfStudy,
		"bio":             account.Bio,
		"company_name":    account.CompanyName,
	}
}

func (userHandler *UserHandler) Info(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, profileBody(viewerFrom(ctx)))
}

type UserUpdateRequest struct {
	PhoneNumber *string `json:"phone_number"`
	Program     *string `json:"program"`
	YearOfStudy *string `json:"year_of_study"`
	Bio         *string `json:"bio"`
	CompanyName *string `json:"company_name"`
}

func (userHandler *UserHandler) UpdateInfo(ctx *gin.Context) {
	var request UserUpdateRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	account := viewerFrom(ctx)
	if request.PhoneNumber != nil {
		account.PhoneNumber = *request.PhoneNumber
	}
	if request.Program != nil {
		account.Program = *request.Program
	}
	if request.YearOfStudy != nil {
		account.YearOfStudy = *request.YearOfStudy
	}
	if request.Bio != nil {
		account.Bio = *request.Bio
	}
	if request.CompanyName != nil {
		account.CompanyName = *request.CompanyName
	}
	if err := userHandler.userService.UpdateUser(account); err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, profileBody(account))
}

func (userHandler *UserHandler) UploadPicture(ctx *gin.Context) {
	file, err := ctx.FormFile("profile_picture")
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "No picture provided."})
		return
	}
	account := viewerFrom(ctx)
	if err := userHandler.userService.SaveProfilePicture(file, account); err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, profileBody(account))
}
