package service

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/repository"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/security"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AuthServiceI interface {
	SignUp(username string, email string, password string, role string) (*user.User, error)
	SignIn(username string, password string) (*user.User, error)
	SetNewResetHash(email string) (*user.User, error)
	SendResetLink(to string, userId uuid.UUID, resetHash string)
	ValidateResetHash(userId uuid.UUID, resetHash string) error
	ResetPassword(userId uuid.UUID, password string) error
}

type AuthService struct {
	userRepo  repository.UserRepositoryI
	host      string
	port      string
	mailToken string
	from      string
	mainUrl   string
	salt      string
}

func NewAuthService(userRepo repository.UserRepositoryI, host, port string, mailToken, from, mainUrl string, salt string) AuthServiceI {
	return &AuthService{
		userRepo:  userRepo,
		host:      host,
		port:      port,
		mailToken: mailToken,
		from:      from,
		mainUrl:   mainUrl,
		salt:      salt,
	}
}

func (authService *AuthService) SignUp(username string, email string, password string, role string) (*user.User, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	newUser := user.User{
		UUID:         uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: security.HashPassword(password, authService.salt),
		Role:         role,
	}
	err := authService.userRepo.InsertUser(ctx, &newUser)
	if err == customerror.ErrUserAlreadyExists {
		return nil, err
	}
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.SignUp")
		return nil, customError
	}
	return &newUser, nil
}

func (authService *AuthService) SignIn(username string, password string) (*user.User, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	user, err := authService.userRepo.GetUserByCredentials(ctx, "username", username)
	if err == pgx.ErrNoRows {
		return nil, customerror.ErrWrongCredentials
	}
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.SignIn")
		return nil, customError
	}
	if user.PasswordHash != security.HashPassword(password, authService.salt) {
		return nil, customerror.ErrWrongCredentials
	}
	return user, nil
}

func (authService *AuthService) SetNewResetHash(email string) (*user.User, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	user, err := authService.userRepo.GetUserByCredentials(ctx, "email", email)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.SetNewResetHash")
		return nil, customError
	}
	if user.ResetHashCreatedAt.Valid && user.ResetHashCreatedAt.Time.Add(5*time.Minute).After(time.Now()) {
		return nil, customerror.ErrTimedOut
	}
	user.ResetHash = security.GenerateHash()
	user.ResetHashCreatedAt = sql.NullTime{
		Time:  time.Now(),
		Valid: true,
	}
	user.ResetHashAttempts = 5
	err = authService.userRepo.UpdateUser(ctx, user)
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.SetNewResetHash")
		return nil, customError
	}
	return user, nil
}

func (authService *AuthService) SendResetLink(to string, userId uuid.UUID, resetHash string) {
	link := fmt.Sprintf("%s/reset-password/%s/%s", authService.mainUrl, userId.String(), resetHash)
	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Password reset\r\n\r\nFollow the link to reset your password: %s\r\n", authService.from, to, link)

	auth := smtp.PlainAuth("", authService.from, authService.mailToken, "smtp.gmail.com")
	tlsConfig := &tls.Config{ServerName: "smtp.gmail.com"}
	conn, err := tls.Dial("tcp", "smtp.gmail.com:465", tlsConfig)
	if err != nil {
		log.Printf("ERROR|AuthService.SendResetLink:%s", err.Error())
		return
	}
	client, err := smtp.NewClient(conn, "smtp.gmail.com")
	if err != nil {
		log.Printf("ERROR|AuthService.SendResetLink:%s", err.Error())
		return
	}
	defer client.Close()
	if err = client.Auth(auth); err != nil {
		log.Printf("ERROR|AuthService.SendResetLink:%s", err.Error())
		return
	}
	if err = client.Mail(authService.from); err != nil {
		log.Printf("ERROR|AuthService.SendResetLink:%s", err.Error())
		return
	}
	if err = client.Rcpt(to); err != nil {
		log.Printf("ERROR|AuthService.SendResetLink:%s", err.Error())
		return
	}
	writer, err := client.Data()
	if err != nil {
		log.Printf("ERROR|AuthService.SendResetLink:%s", err.Error())
		return
	}
	defer writer.Close()
	if _, err = writer.Write([]byte(message)); err != nil {
		log.Printf("ERROR|AuthService.SendResetLink:%s", err.Error())
	}
}

func (authService *AuthService) ValidateResetHash(userId uuid.UUID, resetHash string) error {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	user, err := authService.userRepo.GetUser(ctx, userId)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.ValidateResetHash")
		return customError
	}
	if user.ResetHash == "" || !user.ResetHashCreatedAt.Valid {
		return customerror.ErrResetHashInvalid
	}
	if user.ResetHashCreatedAt.Time.Add(24 * time.Hour).Before(time.Now()) {
		return customerror.ErrResetHashInvalid
	}
	if user.ResetHashAttempts <= 0 {
		return customerror.ErrAttemptsEnded
	}
	if user.ResetHash != resetHash {
		user.ResetHashAttempts--
		if updateErr := authService.userRepo.UpdateUser(ctx, user); updateErr != nil {
			log.Printf("ERROR|AuthService.ValidateResetHash:%s", updateErr.Error())
		}
		return customerror.ErrResetHashInvalid
	}
	return nil
}

func (authService *AuthService) ResetPassword(userId uuid.UUID, password string) error {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	user, err := authService.userRepo.GetUser(ctx, userId)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.ResetPassword")
		return customError
	}
	user.PasswordHash = security.HashPassword(password, authService.salt)
	// Old tokens stop working after a reset.
	user.JWTVersion++
	err = authService.userRepo.UpdateUserSensetive(ctx, user)
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.ResetPassword")
		return customError
	}
	user.ResetHash = ""
	user.ResetHashCreatedAt = sql.NullTime{}
	user.ResetHashAttempts = 0
	err = authService.userRepo.UpdateUser(ctx, user)
	if err != nil {
		customError := err.(customerror.CustomError)
		customError.AppendModule("AuthService.ResetPassword")
		return customError
	}
	return nil
}
