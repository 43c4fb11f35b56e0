package favorite

import (
	"github.com/google/uuid"
)

type Favorite struct {
	Id         int64     `json:"id"`
	PropertyId int64     `json:"property_id"`
	UserId     uuid.UUID `json:"user_id"`
}
