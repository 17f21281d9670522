package services

import (
	"context"
	"fmt"
	"time"

	"github.com/evently/evently-backend-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// lastAdminProposer scans the negotiation history backward and returns the
// most recent admin proposer, so responses route to whoever is currently
// negotiating rather than the original proposer. ok is false when no admin
// has proposed yet.
func lastAdminProposer(history []models.BudgetProposal) (primitive.ObjectID, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Proposer == models.ProposerAdmin {
			return history[i].ProposerID, true
		}
	}
	return primitive.NilObjectID, false
}

// ProposeBudget records an admin counter-offer and moves the negotiation to
// "negotiating". Closed negotiations (accepted/rejected) cannot be reopened.
func (s *EventService) ProposeBudget(ctx context.Context, eventID, adminID primitive.ObjectID, amount float64, message string) (*models.Event, error) {
	if amount <= 0 {
		return nil, NewValidationError("Budget amount is required")
	}

	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.BudgetStatus.CanTransition(models.BudgetNegotiating) {
		return nil, NewInvalidStateError("Budget negotiation is already closed")
	}

	event.AdminProposedBudget = &amount
	event.BudgetStatus = models.BudgetNegotiating
	event.BudgetNegotiationHistory = append(event.BudgetNegotiationHistory, models.BudgetProposal{
		Proposer:   models.ProposerAdmin,
		ProposerID: adminID,
		Amount:     amount,
		Message:    message,
		Timestamp:  time.Now(),
	})
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.dispatch(ctx, []notification{{
		userID:  event.Organizer,
		title:   "New Budget Proposal",
		message: fmt.Sprintf("An admin proposed a budget of %.2f for %q.", amount, event.Title),
		typ:     models.NotifyGeneral,
		eventID: event.ID,
	}})

	return event, nil
}

// RespondToBudgetProposal is the organizer's answer to the current admin
// offer: accept it, counter it, or reject it outright. Accepting approves
// the event; rejecting without a counter declines it.
func (s *EventService) RespondToBudgetProposal(ctx context.Context, eventID, userID primitive.ObjectID, accepted bool, counterProposal *float64, message string) (*models.Event, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organizer != userID {
		return nil, NewForbiddenError("Only organizer can respond to budget proposals")
	}
	if event.BudgetStatus.Terminal() {
		return nil, NewInvalidStateError("Budget negotiation is already closed")
	}
	if event.AdminProposedBudget == nil {
		return nil, NewInvalidStateError("No budget proposal to respond to")
	}

	now := time.Now()
	var effect notification

	switch {
	case accepted:
		amount := *event.AdminProposedBudget
		event.FinalBudget = &amount
		event.BudgetStatus = models.BudgetAccepted
		event.Status = models.StatusApproved
		event.BudgetNegotiationHistory = append(event.BudgetNegotiationHistory, models.BudgetProposal{
			Proposer:   models.ProposerUser,
			ProposerID: userID,
			Amount:     amount,
			Message:    message,
			Timestamp:  now,
		})
		effect = notification{
			title:   "Budget Accepted",
			message: fmt.Sprintf("The organizer accepted the budget of %.2f for %q.", amount, event.Title),
			typ:     models.NotifyGeneral,
		}

	case counterProposal != nil:
		if *counterProposal <= 0 {
			return nil, NewValidationError("Counter proposal must be greater than 0")
		}
		amount := *counterProposal
		event.ProposedBudget = &amount
		event.BudgetStatus = models.BudgetNegotiating
		event.BudgetNegotiationHistory = append(event.BudgetNegotiationHistory, models.BudgetProposal{
			Proposer:   models.ProposerUser,
			ProposerID: userID,
			Amount:     amount,
			Message:    message,
			Timestamp:  now,
		})
		effect = notification{
			title:   "Budget Counter-Proposal",
			message: fmt.Sprintf("The organizer countered with %.2f for %q.", amount, event.Title),
			typ:     models.NotifyGeneral,
		}

	default:
		amount := *event.AdminProposedBudget
		event.BudgetStatus = models.BudgetRejected
		event.Status = models.StatusDeclined
		event.BudgetNegotiationHistory = append(event.BudgetNegotiationHistory, models.BudgetProposal{
			Proposer:   models.ProposerUser,
			ProposerID: userID,
			Amount:     amount,
			Message:    message,
			Timestamp:  now,
		})
		effect = notification{
			title:   "Budget Rejected",
			message: fmt.Sprintf("The organizer rejected the budget of %.2f for %q.", amount, event.Title),
			typ:     models.NotifyGeneral,
		}
	}

	event.UpdatedAt = now
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	if adminID, ok := lastAdminProposer(event.BudgetNegotiationHistory); ok {
		effect.userID = adminID
		effect.eventID = event.ID
		s.dispatch(ctx, []notification{effect})
	}

	return event, nil
}

// AcceptUserBudgetProposal lets an admin approve the organizer's initial
// ask directly, skipping the counter-offer round trip. Only legal while the
// event is still pending.
func (s *EventService) AcceptUserBudgetProposal(ctx context.Context, eventID, adminID primitive.ObjectID) (*models.Event, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.StatusPending {
		return nil, NewInvalidStateError("Event is not pending approval")
	}
	if event.ProposedBudget == nil {
		return nil, NewValidationError("Event has no proposed budget")
	}

	now := time.Now()
	amount := *event.ProposedBudget
	event.FinalBudget = &amount
	event.BudgetStatus = models.BudgetAccepted
	event.Status = models.StatusApproved
	event.BudgetNegotiationHistory = append(event.BudgetNegotiationHistory, models.BudgetProposal{
		Proposer:   models.ProposerAdmin,
		ProposerID: adminID,
		Amount:     amount,
		Timestamp:  now,
	})
	event.UpdatedAt = now

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.dispatch(ctx, []notification{{
		userID:  event.Organizer,
		title:   "Budget Approved",
		message: fmt.Sprintf("Your proposed budget of %.2f for %q was accepted.", amount, event.Title),
		typ:     models.NotifyEventApproved,
		eventID: event.ID,
	}})

	return event, nil
}

// GetBudgetNegotiationHistory returns the append-only negotiation log.
func (s *EventService) GetBudgetNegotiationHistory(ctx context.Context, eventID primitive.ObjectID) ([]models.BudgetProposal, error) {
	event, err := s.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.BudgetNegotiationHistory, nil
}
