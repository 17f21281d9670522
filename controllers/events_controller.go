package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/evently/evently-backend-go/models"
	services "github.com/evently/evently-backend-go/services"
	utils "github.com/evently/evently-backend-go/utils"
)

// requesterID pulls the authenticated user id set by the auth middleware.
func requesterID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		respond(c, http.StatusUnauthorized, "invalid user id", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func eventID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid event id", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func purgeEvents(inv *utils.CacheInvalidator) {
	if inv != nil {
		inv.PurgeEvents(context.Background())
	}
}

// parseDate accepts RFC3339 or a plain date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, e := time.Parse(layout, s); e == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// ---------------- CREATE ----------------
func CreateEvent(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		organizerID, ok := requesterID(c)
		if !ok {
			return
		}

		var input services.CreateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		event, err := svc.CreateEvent(c.Request.Context(), input, organizerID)
		if err != nil {
			fail(c, err, "Failed to create event")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusCreated, "Event created successfully", event)
	}
}

// ---------------- LIST ----------------
func ListEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.EventFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		}
		if s := c.Query("startDate"); s != "" {
			t, err := parseDate(s)
			if err != nil {
				respond(c, http.StatusBadRequest, "invalid startDate format, use RFC3339 or YYYY-MM-DD", nil)
				return
			}
			filter.StartFrom = &t
		}

		events, err := svc.GetAllEvents(c.Request.Context(), filter)
		if err != nil {
			fail(c, err, "Failed to fetch events")
			return
		}
		if len(events) == 0 {
			respond(c, http.StatusOK, "Events fetched successfully", []models.Event{})
			return
		}

		// ETag from the most recently updated event
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		respond(c, http.StatusOK, "Events fetched successfully", events)
	}
}

// ---------------- GET ----------------
func GetEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := svc.GetEventByID(c.Request.Context(), id)
		if err != nil {
			fail(c, err, "Failed to fetch event")
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		respond(c, http.StatusOK, "Event fetched successfully", event)
	}
}

// ---------------- MY EVENTS ----------------
func MyEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		events, err := svc.GetUserEvents(c.Request.Context(), userID)
		if err != nil {
			fail(c, err, "Failed to fetch user events")
			return
		}
		respond(c, http.StatusOK, "User events fetched successfully", events)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		var input services.UpdateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		event, err := svc.UpdateEvent(c.Request.Context(), id, input, userID)
		if err != nil {
			fail(c, err, "Failed to update event")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Event updated successfully", event)
	}
}

// ---------------- UPLOAD IMAGE ----------------
func UploadEventImage(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			respond(c, http.StatusBadRequest, "image file is required", nil)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respond(c, http.StatusInternalServerError, "failed to open file", nil)
			return
		}
		defer file.Close()

		url, err := utils.UploadEventImage(file)
		if err != nil {
			respond(c, http.StatusInternalServerError, "image upload failed", nil)
			return
		}

		event, err := svc.SetEventImage(c.Request.Context(), id, url, userID)
		if err != nil {
			fail(c, err, "Failed to update event image")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Event image updated successfully", event)
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		isAdmin := c.GetString("role") == models.RoleAdmin
		if err := svc.DeleteEvent(c.Request.Context(), id, userID, isAdmin); err != nil {
			fail(c, err, "Failed to delete event")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Event deleted successfully", gin.H{"id": id.Hex()})
	}
}

// ---------------- JOIN / LEAVE ----------------
func JoinEvent(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := svc.JoinEvent(c.Request.Context(), id, userID)
		if err != nil {
			fail(c, err, "Failed to join event")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Successfully joined event", event)
	}
}

func LeaveEvent(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := svc.LeaveEvent(c.Request.Context(), id, userID)
		if err != nil {
			fail(c, err, "Failed to leave event")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Successfully left event", event)
	}
}

// ---------------- BUDGET ----------------
func RespondToBudgetProposal(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		var input struct {
			Accepted        bool     `json:"accepted"`
			CounterProposal *float64 `json:"counter_proposal"`
			Message         string   `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		event, err := svc.RespondToBudgetProposal(c.Request.Context(), id, userID, input.Accepted, input.CounterProposal, input.Message)
		if err != nil {
			fail(c, err, "Failed to respond to budget proposal")
			return
		}

		purgeEvents(inv)
		message := "Budget response sent successfully"
		if input.Accepted {
			message = "Budget accepted successfully"
		}
		respond(c, http.StatusOK, message, event)
	}
}

func GetBudgetNegotiationHistory(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventID(c)
		if !ok {
			return
		}

		history, err := svc.GetBudgetNegotiationHistory(c.Request.Context(), id)
		if err != nil {
			fail(c, err, "Failed to fetch budget negotiation history")
			return
		}
		respond(c, http.StatusOK, "Budget negotiation history fetched successfully", history)
	}
}
