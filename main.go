package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	config "github.com/evently/evently-backend-go/config"
	models "github.com/evently/evently-backend-go/models"
	routes "github.com/evently/evently-backend-go/routes"
	services "github.com/evently/evently-backend-go/services"
	utils "github.com/evently/evently-backend-go/utils"
)

func main() {
	cfg := config.Load()
	defer func() { _ = cfg.MongoClient.Disconnect(context.Background()) }()

	db := cfg.MongoClient.Database(cfg.DBName)
	eventRepo := models.NewMongoEventRepository(db.Collection("events"))
	userRepo := models.NewMongoUserRepository(db.Collection("users"))
	notificationRepo := models.NewMongoNotificationRepository(db.Collection("notifications"))
	venueRepo := models.NewMongoVenueRepository(db.Collection("venues"))
	ticketRepo := models.NewMongoTicketRepository(db.Collection("tickets"))

	eventService := services.NewEventService(eventRepo, userRepo, notificationRepo)
	inv := utils.NewCacheInvalidator(cfg.Redis)

	server := gin.Default()

	corsConf := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConf.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConf.AllowAllOrigins = true
	}
	corsConf.AllowHeaders = append(corsConf.AllowHeaders, "Authorization", "If-None-Match")
	corsConf.MaxAge = 12 * time.Hour
	server.Use(cors.New(corsConf))

	routes.SetupRoutes(server, routes.Deps{
		Cfg:           cfg,
		Events:        eventService,
		Users:         userRepo,
		Notifications: notificationRepo,
		Venues:        venueRepo,
		Tickets:       ticketRepo,
		Invalidator:   inv,
	})

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal("gin.Run error:", err)
	}
}
