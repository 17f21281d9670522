package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/evently/evently-backend-go/models"
	services "github.com/evently/evently-backend-go/services"
	utils "github.com/evently/evently-backend-go/utils"
)

// ---------------- LIST ----------------
func AdminListEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.GetAllEvents(c.Request.Context(), models.EventFilter{})
		if err != nil {
			fail(c, err, "Failed to fetch events")
			return
		}
		respond(c, http.StatusOK, "All events fetched successfully", events)
	}
}

func AdminPendingEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.GetEventsByStatus(c.Request.Context(), models.StatusPending)
		if err != nil {
			fail(c, err, "Failed to fetch pending events")
			return
		}
		respond(c, http.StatusOK, "Pending events fetched successfully", events)
	}
}

// ---------------- APPROVE / DECLINE ----------------
func adminNotes(c *gin.Context) string {
	var input struct {
		AdminNotes string `json:"admin_notes"`
	}
	// Body is optional on approve/decline.
	_ = c.ShouldBindJSON(&input)
	return input.AdminNotes
}

func ApproveEvent(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := svc.UpdateEventStatus(c.Request.Context(), id, models.StatusApproved, adminNotes(c))
		if err != nil {
			fail(c, err, "Failed to approve event")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Event approved successfully", event)
	}
}

func DeclineEvent(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := svc.UpdateEventStatus(c.Request.Context(), id, models.StatusDeclined, adminNotes(c))
		if err != nil {
			fail(c, err, "Failed to decline event")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Event declined successfully", event)
	}
}

// ---------------- BUDGET ----------------
func ProposeBudget(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		var input struct {
			Amount  float64 `json:"amount"`
			Message string  `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		event, err := svc.ProposeBudget(c.Request.Context(), id, adminID, input.Amount, input.Message)
		if err != nil {
			fail(c, err, "Failed to propose budget")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Budget proposal sent successfully", event)
	}
}

func AcceptUserBudgetProposal(svc *services.EventService, inv *utils.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := eventID(c)
		if !ok {
			return
		}

		event, err := svc.AcceptUserBudgetProposal(c.Request.Context(), id, adminID)
		if err != nil {
			fail(c, err, "Failed to accept budget proposal")
			return
		}

		purgeEvents(inv)
		respond(c, http.StatusOK, "Budget proposal accepted successfully", event)
	}
}
