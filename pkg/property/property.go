package property

import (
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/review"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	GenderMixed  = "Mixed"
	GenderGents  = "Gents"
	GenderLadies = "Ladies"
)

func ValidGenderPreference(value string) bool {
	return value == GenderMixed || value == GenderGents || value == GenderLadies
}

type Property struct {
	Id               int64           `json:"id"`
	LandlordId       uuid.UUID       `json:"-"`
	LandlordName     string          `json:"landlord_name"`
	LandlordPhone    string          `json:"landlord_phone"`
	LandlordBio      string          `json:"landlord_bio"`
	LandlordCompany  string          `json:"landlord_company"`
	LandlordPicture  string          `json:"landlord_profile_picture"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	PricePerMonth    decimal.Decimal `json:"price_per_month"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	Address          string          `json:"address"`
	Latitude         *float64        `json:"latitude"`
	Longitude        *float64        `json:"longitude"`
	GenderPreference string          `json:"gender_preference"`
	IsAvailable      bool            `json:"is_available"`
	HasWifi          bool            `json:"has_wifi"`
	HasBorehole      bool            `json:"has_borehole"`
	HasSolar         bool            `json:"has_solar"`
	Curfew           *string         `json:"curfew"`
	VisitorsAllowed  bool            `json:"visitors_allowed"`
	CreatedAt        time.Time       `json:"created_at"`
	Images           []Image         `json:"images"`
	Rooms            []Room          `json:"rooms"`
	Reviews          []review.Review `json:"reviews"`

	// Derived per request, never stored.
	Distance       *float64 `json:"distance"`
	WalkingMinutes *int     `json:"walking_minutes"`
	AverageRating  *float64 `json:"average_rating"`
	ReviewCount    int      `json:"review_count"`
	IsFavorited    bool     `json:"is_favorited"`
}

type Image struct {
	Id         int64     `json:"id"`
	PropertyId int64     `json:"property"`
	Url        string    `json:"image"`
	Filename   string    `json:"-"`
	RoomId     *int64    `json:"room"`
	RoomLabel  *string   `json:"room_label"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Room struct {
	Id          int64  `json:"id"`
	PropertyId  int64  `json:"property"`
	Label       string `json:"label"`
	Capacity    int32  `json:"capacity"`
	IsAvailable bool   `json:"is_available"`
}
