package services

import (
	"context"
	"log"

	"github.com/evently/evently-backend-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// notification is a pending side effect of a lifecycle transition. Effects
// are collected while computing the transition and dispatched only after the
// event has been persisted.
type notification struct {
	userID  primitive.ObjectID
	title   string
	message string
	typ     models.NotificationType
	eventID primitive.ObjectID
}

// dispatch delivers notifications best-effort: a failed create is logged and
// never rolls back the committed event change.
func (s *EventService) dispatch(ctx context.Context, effects []notification) {
	for _, n := range effects {
		err := s.notifications.Create(ctx, &models.Notification{
			User:    n.userID,
			Title:   n.title,
			Message: n.message,
			Type:    n.typ,
			EventID: n.eventID,
		})
		if err != nil {
			log.Printf("failed to create notification for user %s: %v", n.userID.Hex(), err)
		}
	}
}

// adminEffects fans a notification out to every admin account. A directory
// lookup failure is logged and produces no effects.
func (s *EventService) adminEffects(ctx context.Context, title, message string, typ models.NotificationType, eventID primitive.ObjectID) []notification {
	admins, err := s.users.GetAdmins(ctx)
	if err != nil {
		log.Printf("failed to list admin users: %v", err)
		return nil
	}

	effects := make([]notification, 0, len(admins))
	for _, admin := range admins {
		effects = append(effects, notification{
			userID:  admin.ID,
			title:   title,
			message: message,
			typ:     typ,
			eventID: eventID,
		})
	}
	return effects
}
