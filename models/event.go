package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPending   EventStatus = "pending"
	StatusApproved  EventStatus = "approved"
	StatusDeclined  EventStatus = "declined"
	StatusCancelled EventStatus = "cancelled"
	StatusPublished EventStatus = "published"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusDeclined, StatusCancelled, StatusPublished:
		return true
	}
	return false
}

type BudgetStatus string

const (
	BudgetPending     BudgetStatus = "pending"
	BudgetNegotiating BudgetStatus = "negotiating"
	BudgetAccepted    BudgetStatus = "accepted"
	BudgetRejected    BudgetStatus = "rejected"
)

// budgetTransitions enumerates the legal budget state machine. Accepted and
// rejected are terminal: their transition sets are empty.
var budgetTransitions = map[BudgetStatus][]BudgetStatus{
	BudgetPending:     {BudgetNegotiating, BudgetAccepted, BudgetRejected},
	BudgetNegotiating: {BudgetNegotiating, BudgetAccepted, BudgetRejected},
	BudgetAccepted:    {},
	BudgetRejected:    {},
}

func (s BudgetStatus) CanTransition(to BudgetStatus) bool {
	for _, next := range budgetTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s BudgetStatus) Terminal() bool {
	return len(budgetTransitions[s]) == 0
}

const (
	ProposerUser  = "user"
	ProposerAdmin = "admin"
)

// BudgetProposal is one entry of the append-only negotiation log.
type BudgetProposal struct {
	Proposer   string             `bson:"proposer" json:"proposer"` // "user" or "admin"
	ProposerID primitive.ObjectID `bson:"proposer_id,omitempty" json:"proposer_id,omitempty"`
	Amount     float64            `bson:"amount" json:"amount"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     time.Time          `bson:"end_date" json:"end_date"`
	Location    string             `bson:"location" json:"location"`
	Category    string             `bson:"category" json:"category"` // birthday, wedding, workshop, conference, ... or "other"
	EventImage  string             `bson:"event_image,omitempty" json:"event_image,omitempty"`
	Capacity    int                `bson:"capacity,omitempty" json:"capacity,omitempty"`
	TicketPrice float64            `bson:"ticket_price" json:"ticket_price"`

	Organizer primitive.ObjectID   `bson:"organizer" json:"organizer"`
	Attendees []primitive.ObjectID `bson:"attendees" json:"attendees"`

	IsPublic   bool        `bson:"is_public" json:"is_public"`
	Status     EventStatus `bson:"status" json:"status"`
	AdminNotes string      `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`

	ProposedBudget           *float64         `bson:"proposed_budget,omitempty" json:"proposed_budget,omitempty"`
	AdminProposedBudget      *float64         `bson:"admin_proposed_budget,omitempty" json:"admin_proposed_budget,omitempty"`
	FinalBudget              *float64         `bson:"final_budget,omitempty" json:"final_budget,omitempty"`
	BudgetStatus             BudgetStatus     `bson:"budget_status" json:"budget_status"`
	BudgetNegotiationHistory []BudgetProposal `bson:"budget_negotiation_history" json:"budget_negotiation_history"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsAttending reports whether the user is already on the attendee list.
func (e *Event) IsAttending(userID primitive.ObjectID) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}
