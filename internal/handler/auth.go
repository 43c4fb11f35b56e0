package handler

import (
	"log"
	"net/http"

	"github.com/TadaisheChibondo/campus-accomodation/internal/service"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AuthHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	Register(ctx *gin.Context)
	Token(ctx *gin.Context)
	TokenRefresh(ctx *gin.Context)
	PasswordReset(ctx *gin.Context)
	PasswordResetConfirm(ctx *gin.Context)
}

type AuthHandler struct {
	authService service.AuthServiceI
	jwtService  service.JWTServiceI
}

func NewAuthHandler(authService service.AuthServiceI, jwtService service.JWTServiceI) AuthHandlerI {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

func (authHandler *AuthHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/register/", authHandler.Register)
	group.POST("/token/", authHandler.Token)
	group.POST("/token/refresh/", authHandler.TokenRefresh)
	group.POST("/password-reset/", authHandler.PasswordReset)
	group.POST("/password-reset-confirm/:uid/:token/", authHandler.PasswordResetConfirm)
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (authHandler *AuthHandler) Register(ctx *gin.Context) {
	var request RegisterRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	if request.Role == "" {
		request.Role = user.RoleStudent
	}
	if !user.ValidRole(request.Role) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid role."})
		return
	}
	created, err := authHandler.authService.SignUp(request.Username, request.Email, request.Password, request.Role)
	if err == customerror.ErrUserAlreadyExists {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "A user with that username or email already exists."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"id":       created.UUID,
		"username": created.Username,
		"email":    created.Email,
		"role":     created.Role,
	})
}

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (authHandler *AuthHandler) Token(ctx *gin.Context) {
	var request TokenRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	signed, err := authHandler.authService.SignIn(request.Username, request.Password)
	if err == customerror.ErrWrongCredentials {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	access, err := authHandler.jwtService.GenerateToken(signed, true)
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	refresh, err := authHandler.jwtService.GenerateToken(signed, false)
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
	})
}

type TokenRefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (authHandler *AuthHandler) TokenRefresh(ctx *gin.Context) {
	var request TokenRefreshRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	holder, err := authHandler.jwtService.ValidateToken(request.Refresh)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}
	access, err := authHandler.jwtService.GenerateToken(holder, true)
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"access": access})
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

func (authHandler *AuthHandler) PasswordReset(ctx *gin.Context) {
	var request PasswordResetRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	holder, err := authHandler.authService.SetNewResetHash(request.Email)
	if err == pgx.ErrNoRows || err == customerror.ErrTimedOut {
		// Do not reveal whether the address is registered.
		ctx.JSON(http.StatusOK, gin.H{"detail": "Password reset e-mail has been sent."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	go authHandler.authService.SendResetLink(holder.Email, holder.UUID, holder.ResetHash)
	ctx.JSON(http.StatusOK, gin.H{"detail": "Password reset e-mail has been sent."})
}

type PasswordResetConfirmRequest struct {
	Password string `json:"password" binding:"required"`
}

func (authHandler *AuthHandler) PasswordResetConfirm(ctx *gin.Context) {
	userId, err := uuid.Parse(ctx.Param("uid"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid reset link."})
		return
	}
	var request PasswordResetConfirmRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid data."})
		return
	}
	err = authHandler.authService.ValidateResetHash(userId, ctx.Param("token"))
	if err == pgx.ErrNoRows || err == customerror.ErrResetHashInvalid || err == customerror.ErrAttemptsEnded {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid reset link."})
		return
	}
	if err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	if err := authHandler.authService.ResetPassword(userId, request.Password); err != nil {
		log.Print(err.Error())
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"detail": "Password has been reset."})
}
