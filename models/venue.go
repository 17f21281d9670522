package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DayAvailability struct {
	Open      string `bson:"open" json:"open"`
	Close     string `bson:"close" json:"close"`
	Available bool   `bson:"available" json:"available"`
}

type WeekAvailability struct {
	Monday    DayAvailability `bson:"monday" json:"monday"`
	Tuesday   DayAvailability `bson:"tuesday" json:"tuesday"`
	Wednesday DayAvailability `bson:"wednesday" json:"wednesday"`
	Thursday  DayAvailability `bson:"thursday" json:"thursday"`
	Friday    DayAvailability `bson:"friday" json:"friday"`
	Saturday  DayAvailability `bson:"saturday" json:"saturday"`
	Sunday    DayAvailability `bson:"sunday" json:"sunday"`
}

// DefaultAvailability is 09:00-17:00 Monday through Saturday, closed Sunday.
func DefaultAvailability() WeekAvailability {
	day := DayAvailability{Open: "09:00", Close: "17:00", Available: true}
	return WeekAvailability{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    DayAvailability{Open: "09:00", Close: "17:00", Available: false},
	}
}

type Venue struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Address       string             `bson:"address" json:"address"`
	City          string             `bson:"city" json:"city"`
	State         string             `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode       string             `bson:"zip_code,omitempty" json:"zip_code,omitempty"`
	Country       string             `bson:"country" json:"country"`
	Capacity      int                `bson:"capacity" json:"capacity"`
	PricePerHour  float64            `bson:"price_per_hour,omitempty" json:"price_per_hour,omitempty"`
	PricePerDay   float64            `bson:"price_per_day,omitempty" json:"price_per_day,omitempty"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	Images        []string           `bson:"images" json:"images"`
	ContactPerson string             `bson:"contact_person" json:"contact_person"`
	ContactEmail  string             `bson:"contact_email" json:"contact_email"`
	ContactPhone  string             `bson:"contact_phone" json:"contact_phone"`
	Availability  WeekAvailability   `bson:"availability" json:"availability"`
	Rating        float64            `bson:"rating" json:"rating"`
	ReviewCount   int                `bson:"review_count" json:"review_count"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	CreatedBy     primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
