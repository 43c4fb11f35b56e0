package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent  = "student"
	RoleLandlord = "landlord"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleLandlord
}

type User struct {
	UUID               uuid.UUID    `json:"uuid"`
	Username           string       `json:"username"`
	Email              string       `json:"email"`
	PasswordHash       string       `json:"-"`
	Role               string       `json:"role"`
	PhoneNumber        string       `json:"phone_number"`
	Program            string       `json:"program"`
	YearOfStudy        string       `json:"year_of_study"`
	Bio                string       `json:"bio"`
	CompanyName        string       `json:"company_name"`
	ProfilePicture     string       `json:"profile_picture"`
	ProfileFileName    string       `json:"-"`
	ResetHash          string       `json:"-"`
	ResetHashCreatedAt sql.NullTime `json:"-"`
	ResetHashAttempts  int32        `json:"-"`
	JWTVersion         uint         `json:"jwt_version"`
	IsSuperUser        bool         `json:"is_superuser"`
	CreatedAt          time.Time    `json:"created_at"`
}
