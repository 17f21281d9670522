package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/evently/evently-backend-go/config"
	models "github.com/evently/evently-backend-go/models"
	utils "github.com/evently/evently-backend-go/utils"
)

// ---------------- REGISTER ----------------
func Register(cfg *config.Config, users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email       string `json:"email" binding:"required,email"`
			Password    string `json:"password" binding:"required,min=6"`
			Username    string `json:"username" binding:"required"`
			FirstName   string `json:"first_name" binding:"required"`
			LastName    string `json:"last_name" binding:"required"`
			PhoneNumber string `json:"phone_number"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		ctx := c.Request.Context()
		if existing, err := users.GetByEmail(ctx, input.Email); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to register", nil)
			return
		} else if existing != nil {
			respond(c, http.StatusBadRequest, "Email already exists", nil)
			return
		}
		if existing, err := users.GetByUsername(ctx, input.Username); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to register", nil)
			return
		} else if existing != nil {
			respond(c, http.StatusBadRequest, "Username already exists", nil)
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to register", nil)
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
			Role:        models.RoleUser,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := users.Create(ctx, user); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to register", nil)
			return
		}

		token, err := utils.GenerateToken(user.ID.Hex(), user.Role, cfg.JWTSecret)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to register", nil)
			return
		}

		respond(c, http.StatusCreated, "User registered successfully", gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config, users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), input.Email)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to login", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}
		if !utils.CheckPasswordHash(input.Password, user.Password) {
			respond(c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}

		token, err := utils.GenerateToken(user.ID.Hex(), user.Role, cfg.JWTSecret)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to login", nil)
			return
		}

		respond(c, http.StatusOK, "Login successful", gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// ---------------- PASSWORD RESET ----------------
func ForgotPassword(cfg *config.Config, users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, "Email is required", nil)
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), input.Email)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to send reset email", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}

		token, err := utils.GenerateResetToken(user.ID.Hex(), cfg.JWTSecret)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to send reset email", nil)
			return
		}

		resetLink := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("CLIENT_URL"), token)
		body := fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password. This link will expire in 1 hour.</p>`, resetLink)
		if err := utils.SendEmail(user.Email, user.FirstName, "Password Reset", body); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to send reset email", nil)
			return
		}

		respond(c, http.StatusOK, "Password reset email sent", nil)
	}
}

func ResetPassword(cfg *config.Config, users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Token       string `json:"token" binding:"required"`
			NewPassword string `json:"new_password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, "Token and new password are required", nil)
			return
		}

		userIDHex, err := utils.VerifyResetToken(input.Token, cfg.JWTSecret)
		if err != nil {
			respond(c, http.StatusBadRequest, "Invalid or expired token", nil)
			return
		}
		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			respond(c, http.StatusBadRequest, "Invalid or expired token", nil)
			return
		}

		ctx := c.Request.Context()
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to reset password", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}

		hashed, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to reset password", nil)
			return
		}
		user.Password = hashed
		user.UpdatedAt = time.Now()
		if err := users.Update(ctx, user); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to reset password", nil)
			return
		}

		respond(c, http.StatusOK, "Password reset successfully", nil)
	}
}

// ---------------- PROFILE ----------------
func GetProfile(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to fetch profile", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}
		respond(c, http.StatusOK, "Profile fetched successfully", user)
	}
}

func UpdateProfile(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
		if !ok {
			return
		}

		var input struct {
			Email       *string `json:"email"`
			Username    *string `json:"username"`
			FirstName   *string `json:"first_name"`
			LastName    *string `json:"last_name"`
			PhoneNumber *string `json:"phone_number"`
			Password    *string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		ctx := c.Request.Context()
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update profile", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}

		if input.Email != nil && *input.Email != user.Email {
			if existing, err := users.GetByEmail(ctx, *input.Email); err != nil {
				respond(c, http.StatusInternalServerError, "Failed to update profile", nil)
				return
			} else if existing != nil {
				respond(c, http.StatusBadRequest, "Email already exists", nil)
				return
			}
			user.Email = *input.Email
		}
		if input.Username != nil && *input.Username != user.Username {
			if existing, err := users.GetByUsername(ctx, *input.Username); err != nil {
				respond(c, http.StatusInternalServerError, "Failed to update profile", nil)
				return
			} else if existing != nil {
				respond(c, http.StatusBadRequest, "Username already exists", nil)
				return
			}
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
		if input.Password != nil {
			hashed, err := utils.HashPassword(*input.Password)
			if err != nil {
				respond(c, http.StatusInternalServerError, "Failed to update profile", nil)
				return
			}
			user.Password = hashed
		}

		user.UpdatedAt = time.Now()
		if err := users.Update(ctx, user); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update profile", nil)
			return
		}
		respond(c, http.StatusOK, "Profile updated successfully", user)
	}
}

func UpdateProfilePicture(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requesterID(c)
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

		url, err := utils.UploadProfilePicture(file)
		if err != nil {
			respond(c, http.StatusInternalServerError, "image upload failed", nil)
			return
		}

		ctx := c.Request.Context()
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update profile picture", nil)
			return
		}
		if user == nil {
			respond(c, http.StatusNotFound, "User not found", nil)
			return
		}

		if user.ProfilePicture != "" {
			// Best-effort cleanup of the previous avatar.
			if err := utils.DeleteFromCloudinary(user.ProfilePicture); err != nil {
				log.Printf("failed to delete old profile picture: %v", err)
			}
		}

		user.ProfilePicture = url
		user.UpdatedAt = time.Now()
		if err := users.Update(ctx, user); err != nil {
			respond(c, http.StatusInternalServerError, "Failed to update profile picture", nil)
			return
		}
		respond(c, http.StatusOK, "Profile picture updated successfully", user)
	}
}
