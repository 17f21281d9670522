package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventFilter narrows event listings. Zero values are ignored.
type EventFilter struct {
	Category   string
	Search     string
	StartFrom  *time.Time
	Status     EventStatus
	Organizer  primitive.ObjectID
	PublicOnly bool
	Limit      int64
}

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	Find(ctx context.Context, f EventFilter) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetAdmins(ctx context.Context) ([]User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) (*Notification, error)
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// VenueFilter narrows venue listings. Zero values are ignored.
type VenueFilter struct {
	City        string
	State       string
	MinCapacity int
	Search      string
	CreatedBy   primitive.ObjectID
	ActiveOnly  bool
}

type VenueRepository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Venue, error)
	Find(ctx context.Context, f VenueFilter) ([]Venue, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByEventAndUser(ctx context.Context, eventID, userID primitive.ObjectID) (*Ticket, error)
	GetByQRCode(ctx context.Context, qr string) (*Ticket, error)
	Update(ctx context.Context, t *Ticket) error
}
