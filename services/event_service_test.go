package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evently/evently-backend-go/models"
)

func validInput() CreateEventInput {
	start := time.Now().Add(24 * time.Hour)
	return CreateEventInput{
		Title:       "Go Meetup",
		Description: "Monthly community meetup",
		StartDate:   start,
		EndDate:     start.Add(2 * time.Hour),
		Location:    "Nairobi",
		Capacity:    3,
	}
}

func TestCreateEventDefaults(t *testing.T) {
	svc, _, users, notifs := newTestService()
	organizer := users.add(models.RoleUser)
	admin := users.add(models.RoleAdmin)

	event, err := svc.CreateEvent(context.Background(), validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if event.Status != models.StatusPending {
		t.Errorf("status = %q, want %q", event.Status, models.StatusPending)
	}
	if event.BudgetStatus != models.BudgetPending {
		t.Errorf("budget status = %q, want %q", event.BudgetStatus, models.BudgetPending)
	}
	if !event.IsPublic {
		t.Error("event should default to public")
	}
	if event.Category != "other" {
		t.Errorf("category = %q, want other", event.Category)
	}
	if len(event.Attendees) != 1 || event.Attendees[0] != organizer {
		t.Errorf("attendees = %v, want just the organizer", event.Attendees)
	}
	if got := notifs.forUser(admin); len(got) != 1 {
		t.Fatalf("admin notifications = %d, want 1", len(got))
	}
}

func TestCreateEventSeedsBudgetHistory(t *testing.T) {
	svc, _, users, _ := newTestService()
	organizer := users.add(models.RoleUser)

	in := validInput()
	budget := 5000.0
	in.ProposedBudget = &budget

	event, err := svc.CreateEvent(context.Background(), in, organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ProposedBudget == nil || *event.ProposedBudget != budget {
		t.Fatalf("proposed budget not stored")
	}
	if len(event.BudgetNegotiationHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(event.BudgetNegotiationHistory))
	}
	entry := event.BudgetNegotiationHistory[0]
	if entry.Proposer != models.ProposerUser || entry.ProposerID != organizer || entry.Amount != budget {
		t.Errorf("unexpected seed entry %+v", entry)
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc, _, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	ctx := context.Background()

	in := validInput()
	in.Title = ""
	if _, err := svc.CreateEvent(ctx, in, organizer); !IsKind(err, KindValidation) {
		t.Errorf("missing title: got %v, want validation error", err)
	}

	in = validInput()
	in.EndDate = in.StartDate.Add(-time.Hour)
	if _, err := svc.CreateEvent(ctx, in, organizer); !IsKind(err, KindValidation) {
		t.Errorf("end before start: got %v, want validation error", err)
	}

	in = validInput()
	bad := -10.0
	in.ProposedBudget = &bad
	if _, err := svc.CreateEvent(ctx, in, organizer); !IsKind(err, KindValidation) {
		t.Errorf("negative budget: got %v, want validation error", err)
	}
}

func TestGetEventByIDNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.GetEventByID(context.Background(), primitive.NewObjectID())
	if !IsKind(err, KindNotFound) {
		t.Fatalf("got %v, want not found error", err)
	}
}

func TestJoinEvent(t *testing.T) {
	svc, events, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	joiner := users.add(models.RoleUser)
	updated, err := svc.JoinEvent(ctx, event.ID, joiner)
	if err != nil {
		t.Fatalf("JoinEvent: %v", err)
	}
	if !updated.IsAttending(joiner) {
		t.Error("joiner missing from attendees")
	}

	// Double join is a conflict and must not change the stored list.
	if _, err := svc.JoinEvent(ctx, event.ID, joiner); !IsKind(err, KindConflict) {
		t.Errorf("double join: got %v, want conflict error", err)
	}
	stored, _ := events.GetByID(ctx, event.ID)
	if len(stored.Attendees) != 2 {
		t.Errorf("attendees = %d after failed join, want 2", len(stored.Attendees))
	}
}

func TestJoinEventCapacity(t *testing.T) {
	svc, events, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	ctx := context.Background()

	in := validInput()
	in.Capacity = 2
	event, err := svc.CreateEvent(ctx, in, organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if _, err := svc.JoinEvent(ctx, event.ID, users.add(models.RoleUser)); err != nil {
		t.Fatalf("second attendee: %v", err)
	}
	if _, err := svc.JoinEvent(ctx, event.ID, users.add(models.RoleUser)); !IsKind(err, KindCapacity) {
		t.Errorf("over capacity: got %v, want capacity error", err)
	}
	stored, _ := events.GetByID(ctx, event.ID)
	if len(stored.Attendees) != 2 {
		t.Errorf("attendees = %d after capacity rejection, want 2", len(stored.Attendees))
	}
}

func TestLeaveEvent(t *testing.T) {
	svc, events, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	joiner := users.add(models.RoleUser)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := svc.JoinEvent(ctx, event.ID, joiner); err != nil {
		t.Fatalf("JoinEvent: %v", err)
	}

	updated, err := svc.LeaveEvent(ctx, event.ID, joiner)
	if err != nil {
		t.Fatalf("LeaveEvent: %v", err)
	}
	if updated.IsAttending(joiner) {
		t.Error("joiner still attending after leave")
	}

	// Leaving again is a no-op, not an error.
	if _, err := svc.LeaveEvent(ctx, event.ID, joiner); err != nil {
		t.Errorf("repeat leave: %v", err)
	}

	// The organizer can never leave their own event.
	if _, err := svc.LeaveEvent(ctx, event.ID, organizer); err != nil {
		t.Fatalf("organizer leave: %v", err)
	}
	stored, _ := events.GetByID(ctx, event.ID)
	if !stored.IsAttending(organizer) {
		t.Error("organizer removed from attendees")
	}
}

func TestUpdateEventForbidden(t *testing.T) {
	svc, events, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	stranger := users.add(models.RoleUser)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	title := "Hijacked"
	_, err = svc.UpdateEvent(ctx, event.ID, UpdateEventInput{Title: &title}, stranger)
	if !IsKind(err, KindForbidden) {
		t.Fatalf("got %v, want forbidden error", err)
	}
	stored, _ := events.GetByID(ctx, event.ID)
	if stored.Title != event.Title {
		t.Error("title changed despite forbidden update")
	}
}

func TestUpdateEventResetsStatus(t *testing.T) {
	svc, _, users, notifs := newTestService()
	organizer := users.add(models.RoleUser)
	admin := users.add(models.RoleAdmin)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := svc.UpdateEventStatus(ctx, event.ID, models.StatusApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	title := "Go Meetup v2"
	updated, err := svc.UpdateEvent(ctx, event.ID, UpdateEventInput{Title: &title}, organizer)
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("status = %q after edit, want %q", updated.Status, models.StatusPending)
	}
	// create + update both notify admins
	if got := notifs.forUser(admin); len(got) != 2 {
		t.Errorf("admin notifications = %d, want 2", len(got))
	}
}

func TestUpdateEventStatusNotifies(t *testing.T) {
	svc, _, users, notifs := newTestService()
	organizer := users.add(models.RoleUser)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	approved, err := svc.UpdateEventStatus(ctx, event.ID, models.StatusApproved, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}

	got := notifs.forUser(organizer)
	if len(got) != 1 {
		t.Fatalf("organizer notifications = %d, want 1", len(got))
	}
	if got[0].Type != models.NotifyEventApproved {
		t.Errorf("notification type = %q, want %q", got[0].Type, models.NotifyEventApproved)
	}

	declined, err := svc.UpdateEventStatus(ctx, event.ID, models.StatusDeclined, "double booking")
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.AdminNotes != "double booking" {
		t.Errorf("admin notes = %q", declined.AdminNotes)
	}
	got = notifs.forUser(organizer)
	if len(got) != 2 {
		t.Fatalf("organizer notifications = %d, want 2", len(got))
	}
	if got[1].Type != models.NotifyEventDeclined {
		t.Errorf("notification type = %q, want %q", got[1].Type, models.NotifyEventDeclined)
	}
}

func TestUpdateEventStatusInvalid(t *testing.T) {
	svc, _, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := svc.UpdateEventStatus(ctx, event.ID, models.EventStatus("bogus"), ""); !IsKind(err, KindValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestDeleteEventPermissions(t *testing.T) {
	svc, events, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	stranger := users.add(models.RoleUser)
	admin := users.add(models.RoleAdmin)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := svc.DeleteEvent(ctx, event.ID, stranger, false); !IsKind(err, KindForbidden) {
		t.Errorf("stranger delete: got %v, want forbidden", err)
	}
	if err := svc.DeleteEvent(ctx, event.ID, admin, true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if stored, _ := events.GetByID(ctx, event.ID); stored != nil {
		t.Error("event still present after delete")
	}
}

func TestGetAllEventsOnlyPublic(t *testing.T) {
	svc, _, users, _ := newTestService()
	organizer := users.add(models.RoleUser)
	ctx := context.Background()

	if _, err := svc.CreateEvent(ctx, validInput(), organizer); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	private := validInput()
	hidden := false
	private.IsPublic = &hidden
	if _, err := svc.CreateEvent(ctx, private, organizer); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	got, err := svc.GetAllEvents(ctx, models.EventFilter{})
	if err != nil {
		t.Fatalf("GetAllEvents: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1 public", len(got))
	}
}

func TestNotificationFailureDoesNotBlockWrite(t *testing.T) {
	svc, events, users, notifs := newTestService()
	organizer := users.add(models.RoleUser)
	users.add(models.RoleAdmin)
	notifs.failing = true
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validInput(), organizer)
	if err != nil {
		t.Fatalf("CreateEvent should succeed despite notification failure: %v", err)
	}
	if stored, _ := events.GetByID(ctx, event.ID); stored == nil {
		t.Fatal("event not persisted")
	}
	if _, err := svc.UpdateEventStatus(ctx, event.ID, models.StatusApproved, ""); err != nil {
		t.Fatalf("approve should succeed despite notification failure: %v", err)
	}
}
