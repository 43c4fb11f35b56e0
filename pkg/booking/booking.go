package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusAccepted || status == StatusRejected
}

type Booking struct {
	Id             int64     `json:"id"`
	PropertyId     int64     `json:"property"`
	PropertyTitle  string    `json:"property_title"`
	RoomId         *int64    `json:"room"`
	RoomLabel      *string   `json:"room_label"`
	StudentId      uuid.UUID `json:"student"`
	StudentName    string    `json:"student_name"`
	StudentProgram string    `json:"student_program"`
	StudentYear    string    `json:"student_year"`
	StudentPhone   string    `json:"student_phone"`
	MoveInDate     time.Time `json:"move_in_date"`
	Message        string    `json:"message"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
