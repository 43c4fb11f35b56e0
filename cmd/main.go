package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/handler"
	"github.com/TadaisheChibondo/campus-accomodation/internal/middlewares"
	"github.com/TadaisheChibondo/campus-accomodation/internal/repository"
	"github.com/TadaisheChibondo/campus-accomodation/internal/service"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/cleaner"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
)

func initDailyCleaner(pool *pgxpool.Pool) {
	c := cron.New()

	// Every night at 00:00.
	_, err := c.AddFunc("0 0 * * *", func() {
		cleaner.Clean(pool)
	})

	if err != nil {
		log.Fatalf("Failed to schedule cleanup job: %v", err)
	}

	go c.Start()
}

func main() {
	appConfig, err := config.NewConfig(".env")
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", appConfig.DbUser, appConfig.DbPassword, appConfig.DbHost, appConfig.DbPort, appConfig.DbName)
	dbconfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	dbconfig.MaxConns = 100
	dbconfig.MinConns = 10
	dbconfig.MaxConnLifetime = 1 * time.Hour
	dbconfig.MaxConnIdleTime = 15 * time.Minute
	pool, err := pgxpool.NewWithConfig(context.Background(), dbconfig)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("%s", err.Error())
	}

	userRepository := repository.NewUserRepository(pool, appConfig)
	propertyRepository := repository.NewPropertyRepository(pool, appConfig.WebHost, appConfig.WebPort)
	reviewRepository := repository.NewReviewRepository(pool, appConfig.WebHost, appConfig.WebPort)
	bookingRepository := repository.NewBookingRepository(pool, appConfig.WebHost, appConfig.WebPort)
	favoriteRepository := repository.NewFavoriteRepository(pool, appConfig.WebHost, appConfig.WebPort)

	err = userRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = propertyRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = reviewRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = bookingRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = favoriteRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	initDailyCleaner(pool)

	jwtService := service.NewJWTService(appConfig, userRepository)
	authService := service.NewAuthService(userRepository, appConfig.WebHost, appConfig.WebPort, appConfig.MailToken, appConfig.From, appConfig.MainUrl, appConfig.SecretKey)
	userService := service.NewUserService(userRepository, appConfig.WebHost, appConfig.WebPort, appConfig.MainUrl)
	propertyService := service.NewPropertyService(propertyRepository, reviewRepository, favoriteRepository, appConfig.Campus, appConfig.WebHost, appConfig.WebPort, appConfig.MainUrl)
	reviewService := service.NewReviewService(reviewRepository, propertyRepository, appConfig.WebHost, appConfig.WebPort)
	bookingService := service.NewBookingService(bookingRepository, propertyRepository, appConfig.WebHost, appConfig.WebPort)
	middlewares := middlewares.NewMiddlewares(jwtService, propertyRepository, appConfig.WebHost, appConfig.WebPort)

	authHandler := handler.NewAuthHandler(authService, jwtService)
	userHandler := handler.NewUserHandler(userService, middlewares)
	propertyHandler := handler.NewPropertyHandler(propertyService, middlewares)
	reviewHandler := handler.NewReviewHandler(reviewService, middlewares)
	bookingHandler := handler.NewBookingHandler(bookingService, middlewares)

	router := gin.Default()
	router.Static("/media", "./media")
	api := router.Group("/api")

	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	propertyHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)
	bookingHandler.RegisterRoutes(api)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    appConfig.WebHost + ":" + appConfig.WebPort,
		Handler: corsWrapper.Handler(router),
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("%s", err.Error())
	}
}
