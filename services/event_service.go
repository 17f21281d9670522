package services

import (
	"context"
	"fmt"
	"time"

	"github.com/evently/evently-backend-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventService owns the event lifecycle: status transitions, attendee
// membership and the budget negotiation protocol. Collaborators are injected
// so the engine can be exercised against in-memory fakes.
type EventService struct {
	events        models.EventRepository
	users         models.UserRepository
	notifications models.NotificationRepository
}

func NewEventService(events models.EventRepository, users models.UserRepository, notifications models.NotificationRepository) *EventService {
	return &EventService{
		events:        events,
		users:         users,
		notifications: notifications,
	}
}

type CreateEventInput struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Location       string    `json:"location"`
	Category       string    `json:"category"`
	Capacity       int       `json:"capacity"`
	TicketPrice    float64   `json:"ticket_price"`
	IsPublic       *bool     `json:"is_public"`
	ProposedBudget *float64  `json:"proposed_budget"`
}

// UpdateEventInput carries a partial update; nil fields are left untouched.
type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Location    *string    `json:"location"`
	Category    *string    `json:"category"`
	Capacity    *int       `json:"capacity"`
	TicketPrice *float64   `json:"ticket_price"`
	IsPublic    *bool      `json:"is_public"`
}

func validateEventDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return NewValidationError("Start and end dates are required")
	}
	if end.Before(start) {
		return NewValidationError("End date cannot be before start date")
	}
	return nil
}

// CreateEvent registers a new event awaiting admin approval. The organizer
// always joins the attendee list, and a proposed budget seeds the
// negotiation history with a single user entry.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput, organizerID primitive.ObjectID) (*models.Event, error) {
	if in.Title == "" || in.Description == "" || in.Location == "" {
		return nil, NewValidationError("Title, description and location are required")
	}
	if err := validateEventDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	now := time.Now()
	event := &models.Event{
		Title:        in.Title,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Location:     in.Location,
		Category:     in.Category,
		Capacity:     in.Capacity,
		TicketPrice:  in.TicketPrice,
		Organizer:    organizerID,
		Attendees:    []primitive.ObjectID{organizerID},
		IsPublic:     true,
		Status:       models.StatusPending,
		BudgetStatus: models.BudgetPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if event.Category == "" {
		event.Category = "other"
	}
	if in.IsPublic != nil {
		event.IsPublic = *in.IsPublic
	}
	if in.ProposedBudget != nil {
		if *in.ProposedBudget <= 0 {
			return nil, NewValidationError("Proposed budget must be greater than 0")
		}
		amount := *in.ProposedBudget
		event.ProposedBudget = &amount
		event.BudgetNegotiationHistory = []models.BudgetProposal{{
			Proposer:   models.ProposerUser,
			ProposerID: organizerID,
			Amount:     amount,
			Timestamp:  now,
		}}
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.dispatch(ctx, s.adminEffects(ctx,
		"New Event Pending Review",
		fmt.Sprintf("A new event %q is awaiting approval.", event.Title),
		models.NotifyEventUpdated, event.ID))

	return event, nil
}

func (s *EventService) GetEventByID(ctx context.Context, eventID primitive.ObjectID) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, NewNotFoundError("Event not found")
	}
	return event, nil
}

func (s *EventService) GetAllEvents(ctx context.Context, f models.EventFilter) ([]models.Event, error) {
	f.PublicOnly = true
	if f.Limit == 0 {
		f.Limit = 50
	}
	return s.events.Find(ctx, f)
}

func (s *EventService) GetUserEvents(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.events.Find(ctx, models.EventFilter{Organizer: userID})
}

func (s *EventService) GetEventsByStatus(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	if !status.Valid() {
		return nil, NewValidationError("Invalid event status")
	}
	return s.events.Find(ctx, models.EventFilter{Status: status})
}

// UpdateEvent applies an organizer edit. Any edit sends the event back to
// pending so an admin must re-approve it.
func (s *EventService) UpdateEvent(ctx context.Context, eventID primitive.ObjectID, in UpdateEventInput, userID primitive.ObjectID) (*models.Event, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organizer != userID {
		return nil, NewForbiddenError("Only organizer can update this event")
	}

	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.StartDate != nil {
		event.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		event.EndDate = *in.EndDate
	}
	if err := validateEventDates(event.StartDate, event.EndDate); err != nil {
		return nil, err
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Category != nil {
		event.Category = *in.Category
	}
	if in.Capacity != nil {
		event.Capacity = *in.Capacity
	}
	if in.TicketPrice != nil {
		event.TicketPrice = *in.TicketPrice
	}
	if in.IsPublic != nil {
		event.IsPublic = *in.IsPublic
	}

	event.Status = models.StatusPending
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.dispatch(ctx, s.adminEffects(ctx,
		"Event Updated",
		fmt.Sprintf("Event %q was updated by its organizer and needs re-approval.", event.Title),
		models.NotifyEventUpdated, event.ID))

	return event, nil
}

// SetEventImage stores an uploaded image URL. Organizer only; does not touch
// the approval status.
func (s *EventService) SetEventImage(ctx context.Context, eventID primitive.ObjectID, imageURL string, userID primitive.ObjectID) (*models.Event, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organizer != userID {
		return nil, NewForbiddenError("Only organizer can update this event")
	}

	event.EventImage = imageURL
	event.UpdatedAt = time.Now()
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEventStatus is the admin approve/decline path. Role enforcement
// happens at the route boundary; this method only validates the target
// status and notifies the organizer on approval or decline.
func (s *EventService) UpdateEventStatus(ctx context.Context, eventID primitive.ObjectID, status models.EventStatus, adminNotes string) (*models.Event, error) {
	if !status.Valid() {
		return nil, NewValidationError("Invalid event status")
	}

	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.Status = status
	if adminNotes != "" {
		event.AdminNotes = adminNotes
	}
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	switch status {
	case models.StatusApproved:
		s.dispatch(ctx, []notification{{
			userID:  event.Organizer,
			title:   "Event Approved",
			message: fmt.Sprintf("Your event %q has been approved and is now live.", event.Title),
			typ:     models.NotifyEventApproved,
			eventID: event.ID,
		}})
	case models.StatusDeclined:
		message := fmt.Sprintf("Your event %q has been declined.", event.Title)
		if adminNotes != "" {
			message += " Reason: " + adminNotes
		}
		s.dispatch(ctx, []notification{{
			userID:  event.Organizer,
			title:   "Event Declined",
			message: message,
			typ:     models.NotifyEventDeclined,
			eventID: event.ID,
		}})
	}

	return event, nil
}

// DeleteEvent removes an event. Allowed for the organizer or any admin.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID primitive.ObjectID, isAdmin bool) error {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !isAdmin && event.Organizer != userID {
		return NewForbiddenError("Only organizer can delete this event")
	}
	return s.events.Delete(ctx, eventID)
}

// JoinEvent adds the user to the attendee list, respecting capacity.
func (s *EventService) JoinEvent(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsAttending(userID) {
		return nil, NewConflictError("User already attending this event")
	}
	if event.Capacity > 0 && len(event.Attendees) >= event.Capacity {
		return nil, NewCapacityError("Event is at full capacity")
	}

	event.Attendees = append(event.Attendees, userID)
	event.UpdatedAt = time.Now()
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// LeaveEvent removes the user from the attendee list. Removing a non-member
// is a no-op, and the organizer is never removed.
func (s *EventService) LeaveEvent(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if userID == event.Organizer {
		return event, nil
	}

	attendees := event.Attendees[:0:0]
	for _, id := range event.Attendees {
		if id != userID {
			attendees = append(attendees, id)
		}
	}
	event.Attendees = attendees
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
