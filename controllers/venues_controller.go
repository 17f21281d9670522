package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/evently/evently-backend-go/models"
	utils "github.com/evently/evently-backend-go/utils"
)

func venueParamID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("venueId"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid venue id", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

type venueInput struct {
	Name          string                   `json:"name" binding:"required"`
	Description   string                   `json:"description"`
	Address       string                   `json:"address" binding:"required"`
	City          string                   `json:"city" binding:"required"`
	State         string                   `json:"state"`
	ZipCode       string                   `json:"zip_code"`
	Country       string                   `json:"country" binding:"required"`
	Capacity      int                      `json:"capacity" binding:"required,gt=0"`
	PricePerHour  float64                  `json:"price_per_hour"`
	PricePerDay   float64                  `json:"price_per_day"`
	Amenities     []string                 `json:"amenities"`
	ContactPerson string                   `json:"contact_person" binding:"required"`
	ContactEmail  string                   `json:"contact_email" binding:"required,email"`
	ContactPhone  string                   `json:"contact_phone" binding:"required"`
	Availability  *models.WeekAvailability `json:"availability"`
}

// ---------------- CREATE ----------------
func CreateVenue(venues models.VenueRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		var input venueInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		now := time.Now()
		venue := &models.Venue{
			Name:          input.Name,
			Description:   input.Description,
			Address:       input.Address,
			City:          input.City,
			State:         input.State,
			ZipCode:       input.ZipCode,
			Country:       input.Country,
			Capacity:      input.Capacity,
			PricePerHour:  input.PricePerHour,
			PricePerDay:   input.PricePerDay,
			Amenities:     input.Amenities,
			Images:        []string{},
			ContactPerson: input.ContactPerson,
			ContactEmail:  input.ContactEmail,
			ContactPhone:  input.ContactPhone,
			Availability:  models.DefaultAvailability(),
			IsActive:      true,
			CreatedBy:     userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if input.Availability != nil {
			venue.Availability = *input.Availability
		}

		if err := venues.Create(c.Request.Context(), venue); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to create venue", nil)
			return
		}
		respond(c, http.StatusCreated, "Venue created successfully", venue)
	}
}

// ---------------- LIST ----------------
func ListVenues(venues models.VenueRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.VenueFilter{
			City:       c.Query("city"),
			State:      c.Query("state"),
			Search:     c.Query("search"),
			ActiveOnly: true,
		}
		if capStr := c.Query("capacity"); capStr != "" {
			if n, err := strconv.Atoi(capStr); err == nil {
				filter.MinCapacity = n
			}
		}

		items, err := venues.Find(c.Request.Context(), filter)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to fetch venues", nil)
			return
		}
		if items == nil {
			items = []models.Venue{}
		}
		respond(c, http.StatusOK, "Venues fetched successfully", items)
	}
}

// ---------------- GET ----------------
func GetVenue(venues models.VenueRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := venueParamID(c)
		if !ok {
			return
		}

		venue, err := venues.GetByID(c.Request.Context(), id)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to fetch venue", nil)
			return
		}
		if venue == nil {
			respond(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		respond(c, http.StatusOK, "Venue fetched successfully", venue)
	}
}

// ---------------- UPDATE ----------------
func UpdateVenue(venues models.VenueRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := venueParamID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		venue, err := venues.GetByID(ctx, id)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update venue", nil)
			return
		}
		if venue == nil {
			respond(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		if c.GetString("role") != models.RoleAdmin && venue.CreatedBy != userID {
			respond(c, http.StatusForbidden, "Only venue creator or admin can update this venue", nil)
			return
		}

		var input struct {
			Name         *string                  `json:"name"`
			Description  *string                  `json:"description"`
			Address      *string                  `json:"address"`
			City         *string                  `json:"city"`
			State        *string                  `json:"state"`
			Country      *string                  `json:"country"`
			Capacity     *int                     `json:"capacity"`
			PricePerHour *float64                 `json:"price_per_hour"`
			PricePerDay  *float64                 `json:"price_per_day"`
			Amenities    []string                 `json:"amenities"`
			Availability *models.WeekAvailability `json:"availability"`
			IsActive     *bool                    `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		if input.Name != nil {
			venue.Name = *input.Name
		}
		if input.Description != nil {
			venue.Description = *input.Description
		}
		if input.Address != nil {
			venue.Address = *input.Address
		}
		if input.City != nil {
			venue.City = *input.City
		}
		if input.State != nil {
			venue.State = *input.State
		}
		if input.Country != nil {
			venue.Country = *input.Country
		}
		if input.Capacity != nil {
			venue.Capacity = *input.Capacity
		}
		if input.PricePerHour != nil {
			venue.PricePerHour = *input.PricePerHour
		}
		if input.PricePerDay != nil {
			venue.PricePerDay = *input.PricePerDay
		}
		if input.Amenities != nil {
			venue.Amenities = input.Amenities
		}
		if input.Availability != nil {
			venue.Availability = *input.Availability
		}
		if input.IsActive != nil {
			venue.IsActive = *input.IsActive
		}

		venue.UpdatedAt = time.Now()
		if err := venues.Update(ctx, venue); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update venue", nil)
			return
		}
		respond(c, http.StatusOK, "Venue updated successfully", venue)
	}
}

// ---------------- DELETE ----------------
func DeleteVenue(venues models.VenueRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}
		id, ok := venueParamID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		venue, err := venues.GetByID(ctx, id)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to delete venue", nil)
			return
		}
		if venue == nil {
			respond(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		if c.GetString("role") != models.RoleAdmin && venue.CreatedBy != userID {
			respond(c, http.StatusForbidden, "Only venue creator or admin can delete this venue", nil)
			return
		}

		if err := venues.Delete(ctx, id); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to delete venue", nil)
			return
		}

		// Best-effort cleanup of venue images.
		for _, img := range venue.Images {
			_ = utils.DeleteFromCloudinary(img)
		}

		respond(c, http.StatusOK, "Venue deleted successfully", gin.H{"id": id.Hex()})
	}
}
