package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/geo"

	"github.com/joho/godotenv"
)

type Config struct {
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	WebHost        string
	WebPort        string
	MainUrl        string
	SecretKey      string
	MailToken      string
	From           string
	Campus         geo.Point
	AllowedOrigins []string
}

func NewConfig(dotenvPath string) (*Config, error) {
	err := godotenv.Load(dotenvPath)
	if err != nil {
		return &Config{}, customerror.NewError("config.NewConfig", "", err.Error())
	}
	var config Config
	config.DbHost = os.Getenv("DB_HOST")
	if config.DbHost == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "DB_HOST incorrect")
	}
	config.DbPort = os.Getenv("DB_PORT")
	if config.DbPort == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "DB_PORT incorrect")
	}
	config.DbUser = os.Getenv("DB_USER")
	if config.DbUser == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "DB_USER incorrect")
	}
	config.DbPassword = os.Getenv("DB_PASSWORD")
	if config.DbPassword == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "DB_PASSWORD incorrect")
	}
	config.DbName = os.Getenv("DB_NAME")
	if config.DbName == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "DB_NAME incorrect")
	}
	config.WebHost = os.Getenv("WEB_HOST")
	if config.WebHost == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "WEB_HOST incorrect")
	}
	config.WebPort = os.Getenv("WEB_PORT")
	if config.WebPort == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "WEB_PORT incorrect")
	}
	config.MainUrl = os.Getenv("MAIN_URL")
	if config.MainUrl == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "MAIN_URL empty")
	}
	config.SecretKey = os.Getenv("SECRET_KEY")
	if config.SecretKey == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "SECRET_KEY empty")
	}
	config.MailToken = os.Getenv("MAIL_TOKEN")
	if config.MailToken == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "MAIL_TOKEN empty")
	}
	config.From = os.Getenv("FROM")
	if config.From == "" {
		return &Config{}, customerror.NewError("config.NewConfig", "", "FROM empty")
	}
	// The campus anchor is fixed per deployment; every distance badge is
	// computed against it.
	campusLat := os.Getenv("CAMPUS_LAT")
	lat, err := strconv.ParseFloat(campusLat, 64)
	if err != nil {
		return &Config{}, customerror.NewError("config.NewConfig", "", "CAMPUS_LAT incorrect")
	}
	campusLng := os.Getenv("CAMPUS_LNG")
	lng, err := strconv.ParseFloat(campusLng, 64)
	if err != nil {
		return &Config{}, customerror.NewError("config.NewConfig", "", "CAMPUS_LNG incorrect")
	}
	config.Campus = geo.Point{Lat: lat, Lng: lng}
	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		config.AllowedOrigins = []string{"*"}
	} else {
		for _, origin := range strings.Split(origins, ",") {
			config.AllowedOrigins = append(config.AllowedOrigins, strings.TrimSpace(origin))
		}
	}
	return &config, nil
}
