package middlewares

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/repository"
	"github.com/TadaisheChibondo/campus-accomodation/internal/service"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
)

type MiddlewaresI interface {
	ValidUser() gin.HandlerFunc
	OptionalUser() gin.HandlerFunc
	MyProperty() gin.HandlerFunc
}

type Middlewares struct {
	jwtService   service.JWTServiceI
	propertyRepo repository.PropertyRepositoryI
	host         string
	port         string
}

func NewMiddlewares(jwtService service.JWTServiceI, propertyRepo repository.PropertyRepositoryI, host, port string) MiddlewaresI {
	return &Middlewares{
		jwtService:   jwtService,
		propertyRepo: propertyRepo,
		host:         host,
		port:         port,
	}
}

func bearerToken(ctx *gin.Context) string {
	authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func (middlewares *Middlewares) ValidUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		user, err := middlewares.jwtService.ValidateToken(token)
		if errors.Is(err, jwt.ErrTokenExpired) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token expired."})
			return
		}
		if err == customerror.ErrJwtInvalid || err == customerror.ErrJwtVersionIncorrect || err == pgx.ErrNoRows {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token invalid."})
			return
		}
		if err != nil {
			customErr := err.(customerror.CustomError)
			customErr.AppendModule("Middlewares")
			log.Print(customErr.Error())
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
			return
		}
		ctx.Set("user", user)
		ctx.Next()
	}
}

// OptionalUser resolves the viewer if a valid token is supplied and stays
// silent otherwise. Public listing endpoints use it so favorite flags can
// be populated for logged-in viewers without closing the route to guests.
func (middlewares *Middlewares) OptionalUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.Next()
			return
		}
		user, err := middlewares.jwtService.ValidateToken(token)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Set("user", user)
		ctx.Next()
	}
}

func (middlewares *Middlewares) MyProperty() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authUser, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
			return
		}
		user := authUser.(*user.User)

		propertyIdStr := ctx.Param("id")
		propertyId, err := strconv.ParseInt(propertyIdStr, 10, 64)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid id."})
			return
		}
		c, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		record, err := middlewares.propertyRepo.GetProperty(c, propertyId)
		if err == pgx.ErrNoRows {
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if err != nil {
			customErr := err.(customerror.CustomError)
			customErr.AppendModule("Middlewares")
			log.Print(customErr.Error())
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
			return
		}
		if record.LandlordId != user.UUID && !user.IsSuperUser {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}
		ctx.Set("property", record)
		ctx.Next()
	}
}
