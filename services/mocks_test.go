package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evently/evently-backend-go/models"
)

// In-memory fakes with store-like copy semantics: reads hand back copies so
// a caller mutating a returned event cannot change stored state without an
// explicit Update.

type memEventRepo struct {
	items map[primitive.ObjectID]models.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{items: make(map[primitive.ObjectID]models.Event)}
}

func copyEvent(e models.Event) models.Event {
	e.Attendees = append([]primitive.ObjectID(nil), e.Attendees...)
	e.BudgetNegotiationHistory = append([]models.BudgetProposal(nil), e.BudgetNegotiationHistory...)
	if e.ProposedBudget != nil {
		v := *e.ProposedBudget
		e.ProposedBudget = &v
	}
	if e.AdminProposedBudget != nil {
		v := *e.AdminProposedBudget
		e.AdminProposedBudget = &v
	}
	if e.FinalBudget != nil {
		v := *e.FinalBudget
		e.FinalBudget = &v
	}
	return e
}

func (m *memEventRepo) Create(_ context.Context, e *models.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	m.items[e.ID] = copyEvent(*e)
	return nil
}

func (m *memEventRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	out := copyEvent(e)
	return &out, nil
}

func (m *memEventRepo) Find(_ context.Context, f models.EventFilter) ([]models.Event, error) {
	var out []models.Event
	for _, e := range m.items {
		if f.PublicOnly && !e.IsPublic {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if !f.Organizer.IsZero() && e.Organizer != f.Organizer {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, copyEvent(e))
	}
	return out, nil
}

func (m *memEventRepo) Update(_ context.Context, e *models.Event) error {
	if _, ok := m.items[e.ID]; !ok {
		return errors.New("not found")
	}
	m.items[e.ID] = copyEvent(*e)
	return nil
}

func (m *memEventRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return errors.New("not found")
	}
	delete(m.items, id)
	return nil
}

type memUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (m *memUserRepo) add(role string) primitive.ObjectID {
	id := primitive.NewObjectID()
	m.users[id] = models.User{ID: id, Role: role}
	return id
}

func (m *memUserRepo) Create(_ context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetAdmins(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		if u.Role == models.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return errors.New("not found")
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.users[id]; !ok {
		return errors.New("not found")
	}
	delete(m.users, id)
	return nil
}

type memNotificationRepo struct {
	items   []models.Notification
	failing bool // when set, Create always errors
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (m *memNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if m.failing {
		return errors.New("notification store down")
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotificationRepo) ListByUser(_ context.Context, userID primitive.ObjectID, _ int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.items {
		if n.User == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotificationRepo) MarkRead(_ context.Context, id, userID primitive.ObjectID) (*models.Notification, error) {
	for i, n := range m.items {
		if n.ID == id && n.User == userID {
			m.items[i].IsRead = true
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memNotificationRepo) MarkAllRead(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for i, n := range m.items {
		if n.User == userID && !n.IsRead {
			m.items[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) UnreadCount(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.User == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i, n := range m.items {
		if n.ID == id && n.User == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memNotificationRepo) forUser(userID primitive.ObjectID) []models.Notification {
	var out []models.Notification
	for _, n := range m.items {
		if n.User == userID {
			out = append(out, n)
		}
	}
	return out
}

// newTestService wires the engine against fresh fakes and returns the parts
// tests poke at.
func newTestService() (*EventService, *memEventRepo, *memUserRepo, *memNotificationRepo) {
	events := newMemEventRepo()
	users := newMemUserRepo()
	notifs := newMemNotificationRepo()
	return NewEventService(events, users, notifs), events, users, notifs
}
