package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/refbase/internal/app/controllers"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	officialController *controllers.OfficialController,
	eventController *controllers.EventController,
	availabilityController *controllers.AvailabilityController,
	assignmentController *controllers.AssignmentController,
	rosterController *controllers.RosterController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group. Every request gets its session resolved up front;
	// the admin groups below additionally enforce it.
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.WithSession())

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Official routes: browsing the roster and photos is public so the
	// availability form can show who it is about, everything that writes
	// plus the passport scan is admin only
	officials := v1.Group("/officials")
	{
		officials.GET("", officialController.GetOfficials)
		officials.GET("/:id", officialController.GetOfficialByID)
		officials.GET("/:id/photo", officialController.GetPhoto)

		officialsAdmin := officials.Group("")
		officialsAdmin.Use(authMiddleware.AdminRequired())
		{
			officialsAdmin.POST("", officialController.CreateOfficial)
			officialsAdmin.PUT("/:id", officialController.UpdateOfficial)
			officialsAdmin.DELETE("/:id", officialController.DeleteOfficial)

			// Attachment management
			officialsAdmin.PUT("/:id/photo", officialController.UploadPhoto)
			officialsAdmin.PUT("/:id/passport", officialController.UploadPassport)
			officialsAdmin.GET("/:id/passport", officialController.GetPassport)

			// Bulk sheet exchange
			officialsAdmin.POST("/import", officialController.ImportOfficials)
			officialsAdmin.GET("/export", officialController.ExportOfficials)
		}
	}

	// Event routes (public read, admin write)
	events := v1.Group("/events")
	{
		events.GET("", eventController.GetEvents)
		events.GET("/seasons", eventController.GetSeasons)
		events.GET("/:id", eventController.GetEventByID)

		eventsAdmin := events.Group("")
		eventsAdmin.Use(authMiddleware.AdminRequired())
		{
			eventsAdmin.POST("", eventController.CreateEvent)
			eventsAdmin.PUT("/:id", eventController.UpdateEvent)
			eventsAdmin.DELETE("/:id", eventController.DeleteEvent)
		}
	}

	// Availability routes (public): officials fill the form without an
	// account, identified by the official they pick on it
	availability := v1.Group("/availability")
	{
		availability.GET("/form", availabilityController.GetForm)
		availability.POST("", availabilityController.SubmitForm)
	}

	// Assignment routes (admin only)
	assignments := v1.Group("/assignments")
	assignments.Use(authMiddleware.AdminRequired())
	{
		assignments.GET("", assignmentController.GetAssignments)
		assignments.POST("", assignmentController.CreateAssignment)
		assignments.DELETE("/:id", assignmentController.DeleteAssignment)
	}

	// Roster report routes (admin only)
	roster := v1.Group("/roster")
	roster.Use(authMiddleware.AdminRequired())
	{
		roster.GET("", rosterController.GetRoster)
		roster.GET("/export", rosterController.ExportRoster)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
