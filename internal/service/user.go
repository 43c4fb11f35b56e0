package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/repository"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/google/uuid"
)

type UserServiceI interface {
	UpdateUser(user *user.User) error
	SaveProfilePicture(file *multipart.FileHeader, user *user.User) error
}

type UserService struct {
	userRepo repository.UserRepositoryI
	host     string
	port     string
	mainUrl  string
}

func NewUserService(userRepo repository.UserRepositoryI, host string, port string, mainUrl string) UserServiceI {
	return &UserService{
		userRepo: userRepo,
		host:     host,
		port:     port,
		mainUrl:  mainUrl,
	}
}

func (userService *UserService) UpdateUser(updated *user.User) error {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	err := userService.userRepo.UpdateUser(ctx, updated)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("UserService.UpdateUser")
		return customErr
	}
	return nil
}

func (userService *UserService) SaveProfilePicture(file *multipart.FileHeader, updated *user.User) error {
	fileExt := filepath.Ext(file.Filename)
	if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" && fileExt != ".webp" {
		return customerror.NewError("UserService.SaveProfilePicture.FileExt", userService.host+":"+userService.port, "Invalid file extension")
	}
	uploadPath := filepath.Join(".", "media", "profiles", updated.UUID.String())
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		return customerror.NewError("UserService.SaveProfilePicture.MkdirAll", userService.host+":"+userService.port, err.Error())
	}
	newFilename := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), fileExt)
	fullPath := filepath.Join(uploadPath, newFilename)
	src, err := file.Open()
	if err != nil {
		return customerror.NewError("UserService.SaveProfilePicture.Open", userService.host+":"+userService.port, err.Error())
	}
	defer src.Close()
	dst, err := os.Create(fullPath)
	if err != nil {
		return customerror.NewError("UserService.SaveProfilePicture.Create", userService.host+":"+userService.port, err.Error())
	}
	defer dst.Close()
	if _, err = io.Copy(dst, src); err != nil {
		return customerror.NewError("UserService.SaveProfilePicture.Copy", userService.host+":"+userService.port, err.Error())
	}
	oldFilename := updated.ProfileFileName
	updated.ProfilePicture = fmt.Sprintf("%s/media/profiles/%s/%s", userService.mainUrl, updated.UUID.String(), newFilename)
	updated.ProfileFileName = newFilename
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	if err := userService.userRepo.UpdateUser(ctx, updated); err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("UserService.SaveProfilePicture")
		return customErr
	}
	if oldFilename != "" {
		go userService.deleteFile(filepath.Join(".", "media", "profiles", updated.UUID.String(), oldFilename))
	}
	return nil
}

func (userService *UserService) deleteFile(path string) {
	if err := os.Remove(path); err != nil {
		log.Printf("ERROR|UserService.deleteFile:%s", err.Error())
	}
}
