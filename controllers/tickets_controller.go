package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/evently/evently-backend-go/models"
	services "github.com/evently/evently-backend-go/services"
	utils "github.com/evently/evently-backend-go/utils"
)

// ---------------- CREATE ----------------
func CreateTicket(svc *services.EventService, tickets models.TicketRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		var input struct {
			EventID string `json:"event_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		eventID, err := primitive.ObjectIDFromHex(input.EventID)
		if err != nil {
			respond(c, http.StatusBadRequest, "invalid event id", nil)
			return
		}

		ctx := c.Request.Context()
		event, err := svc.GetEventByID(ctx, eventID)
		if err != nil {
			fail(c, err, "Failed to create ticket")
			return
		}
		if !event.IsAttending(userID) {
			respond(c, http.StatusForbidden, "You must join the event before getting a ticket", nil)
			return
		}

		if existing, err := tickets.GetByEventAndUser(ctx, eventID, userID); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to create ticket", nil)
			return
		} else if existing != nil {
			respond(c, http.StatusOK, "Ticket already exists", existing)
			return
		}

		now := time.Now()
		payload := fmt.Sprintf("%s:%s:%d", eventID.Hex(), userID.Hex(), now.Unix())
		qr, err := utils.TicketQRCode(payload)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to generate QR code", nil)
			return
		}

		ticket := &models.Ticket{
			Event:     eventID,
			User:      userID,
			QRCode:    qr,
			Status:    models.TicketIssued,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tickets.Create(ctx, ticket); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to create ticket", nil)
			return
		}
		respond(c, http.StatusCreated, "Ticket created successfully", ticket)
	}
}

// ---------------- GET ----------------
func GetTicket(tickets models.TicketRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
		if err != nil {
			respond(c, http.StatusBadRequest, "invalid event id", nil)
			return
		}
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			respond(c, http.StatusBadRequest, "invalid user id", nil)
			return
		}

		ticket, err := tickets.GetByEventAndUser(c.Request.Context(), eventID, userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to fetch ticket", nil)
			return
		}
		if ticket == nil {
			respond(c, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		respond(c, http.StatusOK, "Ticket fetched successfully", ticket)
	}
}

// ---------------- CHECK IN ----------------
func CheckInTicket(tickets models.TicketRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			QRCode string `json:"qr_code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		ctx := c.Request.Context()
		ticket, err := tickets.GetByQRCode(ctx, input.QRCode)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to check in ticket", nil)
			return
		}
		if ticket == nil {
			respond(c, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		if ticket.Status == models.TicketCheckedIn {
			respond(c, http.StatusConflict, "Ticket already checked in", ticket)
			return
		}

		ticket.Status = models.TicketCheckedIn
		ticket.UpdatedAt = time.Now()
		if err := tickets.Update(ctx, ticket); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to check in ticket", nil)
			return
		}
		respond(c, http.StatusOK, "Ticket checked in successfully", ticket)
	}
}
