package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/evently/evently-backend-go/models"
	utils "github.com/evently/evently-backend-go/utils"
)

func userParamID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid user id", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// Admin-only user management.

// ---------------- CREATE ----------------
func AdminCreateUser(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email       string `json:"email" binding:"required,email"`
			Password    string `json:"password" binding:"required,min=6"`
			Username    string `json:"username" binding:"required"`
			FirstName   string `json:"first_name" binding:"required"`
			LastName    string `json:"last_name" binding:"required"`
			PhoneNumber string `json:"phone_number"`
			Role        string `json:"role"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if input.Role == "" {
			input.Role = models.RoleUser
		}
		if input.Role != models.RoleUser && input.Role != models.RoleAdmin {
			respond(c, http.StatusBadRequest, "invalid role", nil)
			return
		}

		ctx := c.Request.Context()
		if existing, err := users.GetByEmail(ctx, input.Email); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to create user", nil)
			return
		} else if existing != nil {
			respond(c, http.StatusBadRequest, "Email already exists", nil)
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to create user", nil)
			return
		}

		now := time.Now()
		user := &models.User{
			Email:       input.Email,
			Password:    hashed,
			Username:    input.Username,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			PhoneNumber: input.PhoneNumber,
			Role:        input.Role,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := users.Create(ctx, user); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to create user", nil)
			return
		}
		respond(c, http.StatusCreated, "User created successfully", user)
	}
}

// ---------------- LIST ----------------
func AdminListUsers(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := users.GetAll(c.Request.Context())
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to fetch users", nil)
			return
		}
		respond(c, http.StatusOK, "Users fetched successfully", all)
	}
}

// ---------------- GET ----------------
func AdminGetUser(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userParamID(c)
		if !ok {
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to fetch user", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}
		respond(c, http.StatusOK, "User fetched successfully", user)
	}
}

// ---------------- UPDATE ----------------
func AdminUpdateUser(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userParamID(c)
		if !ok {
			return
		}

		var input struct {
			Email       *string `json:"email"`
			Username    *string `json:"username"`
			FirstName   *string `json:"first_name"`
			LastName    *string `json:"last_name"`
			PhoneNumber *string `json:"phone_number"`
			Role        *string `json:"role"`
			Password    *string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		ctx := c.Request.Context()
		user, err := users.GetByID(ctx, id)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update user", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}

		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.Role != nil {
			if *input.Role != models.RoleUser && *input.Role != models.RoleAdmin {
				respond(c, http.StatusBadRequest, "invalid role", nil)
				return
			}
			user.Role = *input.Role
		}
		if input.Password != nil {
			hashed, err := utils.HashPassword(*input.Password)
			if err != nil {
				respond(c, http.StatusInternalServerError, "Failed to update user", nil)
				return
			}
			user.Password = hashed
		}

		user.UpdatedAt = time.Now()
		if err := users.Update(ctx, user); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update user", nil)
			return
		}
		respond(c, http.StatusOK, "User updated successfully", user)
	}
}

// ---------------- DELETE ----------------
func AdminDeleteUser(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userParamID(c)
		if !ok {
			return
		}

		if err := users.Delete(c.Request.Context(), id); err != nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}
		respond(c, http.StatusOK, "User deleted successfully", gin.H{"id": id.Hex()})
	}
}
