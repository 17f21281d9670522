package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	services "github.com/evently/evently-backend-go/services"
)

// respond writes the standard envelope: {success, message, data}.
func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"success": status < http.StatusBadRequest,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail translates a domain error into its HTTP status; anything else
// becomes a 500 with the fallback message.
func fail(c *gin.Context, err error, fallback string) {
	var de *services.Error
	if errors.As(err, &de) {
		respond(c, de.HTTPStatus(), de.Message, nil)
		return
	}
	respond(c, http.StatusInternalServerError, fallback, nil)
}
