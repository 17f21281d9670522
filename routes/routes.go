package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/evently/evently-backend-go/config"
	controllers "github.com/evently/evently-backend-go/controllers"
	middleware "github.com/evently/evently-backend-go/middleware"
	models "github.com/evently/evently-backend-go/models"
	services "github.com/evently/evently-backend-go/services"
	utils "github.com/evently/evently-backend-go/utils"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Cfg           *config.Config
	Events        *services.EventService
	Users         models.UserRepository
	Notifications models.NotificationRepository
	Venues        models.VenueRepository
	Tickets       models.TicketRepository
	Invalidator   *utils.CacheInvalidator
}

func SetupRoutes(r *gin.Engine, d Deps) {
	auth := middleware.AuthMiddleware(d.Cfg)
	adminOnly := middleware.AdminOnly()

	authLimiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     1,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	limited := authLimiter.Middleware(middleware.ByClientIP)

	api := r.Group("/api")

	// public auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limited, controllers.Register(d.Cfg, d.Users))
		authGroup.POST("/login", limited, controllers.Login(d.Cfg, d.Users))
		authGroup.POST("/forgot-password", limited, controllers.ForgotPassword(d.Cfg, d.Users))
		authGroup.POST("/reset-password", limited, controllers.ResetPassword(d.Cfg, d.Users))

		authGroup.GET("/profile", auth, controllers.GetProfile(d.Users))
		authGroup.PUT("/profile", auth, controllers.UpdateProfile(d.Users))
		authGroup.PUT("/profile-picture", auth, controllers.UpdateProfilePicture(d.Users))
	}

	// events
	events := api.Group("/events")
	{
		if d.Cfg.Redis != nil {
			events.Use(middleware.ResponseCache(d.Cfg.Redis, 30*time.Second))
		}

		events.GET("", controllers.ListEvents(d.Events))
		events.GET("/:eventId", controllers.GetEvent(d.Events))

		events.POST("", auth, controllers.CreateEvent(d.Events, d.Invalidator))
		events.GET("/user/my-events", auth, controllers.MyEvents(d.Events))
		events.PUT("/:eventId", auth, controllers.UpdateEvent(d.Events, d.Invalidator))
		events.PUT("/:eventId/image", auth, controllers.UploadEventImage(d.Events, d.Invalidator))
		events.DELETE("/:eventId", auth, controllers.DeleteEvent(d.Events, d.Invalidator))
		events.POST("/:eventId/join", auth, controllers.JoinEvent(d.Events, d.Invalidator))
		events.POST("/:eventId/leave", auth, controllers.LeaveEvent(d.Events, d.Invalidator))
		events.POST("/:eventId/budget-response", auth, controllers.RespondToBudgetProposal(d.Events, d.Invalidator))
		events.GET("/:eventId/budget-history", auth, controllers.GetBudgetNegotiationHistory(d.Events))
	}

	// admin
	admin := api.Group("/admin")
	admin.Use(auth, adminOnly)
	{
		adminEvents := admin.Group("/events")
		{
			adminEvents.GET("", controllers.AdminListEvents(d.Events))
			adminEvents.GET("/pending", controllers.AdminPendingEvents(d.Events))
			adminEvents.PUT("/:eventId/approve", controllers.ApproveEvent(d.Events, d.Invalidator))
			adminEvents.PUT("/:eventId/decline", controllers.DeclineEvent(d.Events, d.Invalidator))
			adminEvents.POST("/:eventId/budget-proposal", controllers.ProposeBudget(d.Events, d.Invalidator))
			adminEvents.PUT("/:eventId/budget-accept", controllers.AcceptUserBudgetProposal(d.Events, d.Invalidator))
		}

		adminUsers := admin.Group("/users")
		{
			adminUsers.POST("", controllers.AdminCreateUser(d.Users))
			adminUsers.GET("", controllers.AdminListUsers(d.Users))
			adminUsers.GET("/:id", controllers.AdminGetUser(d.Users))
			adminUsers.PUT("/:id", controllers.AdminUpdateUser(d.Users))
			adminUsers.DELETE("/:id", controllers.AdminDeleteUser(d.Users))
		}
	}

	// notifications
	notifs := api.Group("/notifications")
	notifs.Use(auth)
	{
		notifs.GET("", controllers.ListNotifications(d.Notifications))
		notifs.GET("/unread-count", controllers.UnreadNotificationCount(d.Notifications))
		notifs.PATCH("/:notificationId/read", controllers.MarkNotificationRead(d.Notifications))
		notifs.PATCH("/mark-all-read", controllers.MarkAllNotificationsRead(d.Notifications))
		notifs.DELETE("/:notificationId", controllers.DeleteNotification(d.Notifications))
	}

	// venues
	venues := api.Group("/venues")
	{
		venues.GET("", controllers.ListVenues(d.Venues))
		venues.GET("/:venueId", controllers.GetVenue(d.Venues))

		venues.POST("", auth, controllers.CreateVenue(d.Venues))
		venues.PUT("/:venueId", auth, controllers.UpdateVenue(d.Venues))
		venues.DELETE("/:venueId", auth, controllers.DeleteVenue(d.Venues))
	}

	// tickets
	tickets := api.Group("/tickets")
	tickets.Use(auth)
	{
		tickets.POST("", controllers.CreateTicket(d.Events, d.Tickets))
		tickets.GET("/:eventId/:userId", controllers.GetTicket(d.Tickets))
		tickets.POST("/checkin", adminOnly, controllers.CheckInTicket(d.Tickets))
	}
}
