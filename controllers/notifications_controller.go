package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/evently/evently-backend-go/models"
)

func notificationParamID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("notificationId"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid notification id", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// ---------------- LIST ----------------
func ListNotifications(notifications models.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
		items, err := notifications.ListByUser(c.Request.Context(), userID, limit)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to fetch notifications", nil)
			return
		}
		if items == nil {
			items = []models.Notification{}
		}
		respond(c, http.StatusOK, "Notifications fetched successfully", items)
	}
}

// ---------------- UNREAD COUNT ----------------
func UnreadNotificationCount(notifications models.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		count, err := notifications.UnreadCount(c.Request.Context(), userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to get unread count", nil)
			return
		}
		respond(c, http.StatusOK, "Unread count fetched successfully", gin.H{"count": count})
	}
}

// ---------------- MARK READ ----------------
func MarkNotificationRead(notifications models.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := notificationParamID(c)
		if !ok {
			return
		}

		n, err := notifications.MarkRead(c.Request.Context(), id, userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to mark notification as read", nil)
			return
		}
		if n == nil {
			respond(c, http.StatusNotFound, "Notification not found", nil)
			return
		}
		respond(c, http.StatusOK, "Notification marked as read", n)
	}
}

func MarkAllNotificationsRead(notifications models.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		count, err := notifications.MarkAllRead(c.Request.Context(), userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to mark notifications as read", nil)
			return
		}
		respond(c, http.StatusOK, "Notifications marked as read", gin.H{"modified": count})
	}
}

// ---------------- DELETE ----------------
func DeleteNotification(notifications models.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := notificationParamID(c)
		if !ok {
			return
		}

		if err := notifications.Delete(c.Request.Context(), id, userID); err != nil {
			respond(c, http.StatusNotFound, "Notification not found", nil)
			return
		}
		respond(c, http.StatusOK, "Notification deleted successfully", gin.H{"id": id.Hex()})
	}
}
