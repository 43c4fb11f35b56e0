package review

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	Id         int64     `json:"id"`
	PropertyId int64     `json:"-"`
	UserId     uuid.UUID `json:"-"`
	User       string    `json:"user"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
