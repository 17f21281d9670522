package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketStatus string

const (
	TicketIssued    TicketStatus = "issued"
	TicketCheckedIn TicketStatus = "checked_in"
)

type Ticket struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Event     primitive.ObjectID `bson:"event" json:"event"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	QRCode    string             `bson:"qr_code" json:"qr_code"` // base64 PNG data URL
	Status    TicketStatus       `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
