package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"cliquemap/cmd/fx/account_fx"
	"cliquemap/cmd/fx/clique_fx"
	"cliquemap/cmd/fx/db_fx"
	"cliquemap/cmd/fx/event_fx"
	"cliquemap/cmd/fx/lifecycle_fx"
	"cliquemap/cmd/fx/marker_fx"
	"cliquemap/cmd/fx/notification_fx"
	"cliquemap/internal/api/controllers"
	"cliquemap/internal/scheduler"
	"cliquemap/internal/services"
	"cliquemap/pkg/middleware"
	"cliquemap/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		lifecycle_fx.Module,
		account_fx.Module,
		clique_fx.Module,
		marker_fx.Module,
		event_fx.Module,
		notification_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartJanitor),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func StartJanitor(lc fx.Lifecycle, eventService services.EventServiceInterface) {
	janitor := scheduler.NewEventJanitor(eventService, time.Hour)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			janitor.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			janitor.Stop()
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	cliqueController *controllers.CliqueController,
	markerController *controllers.MarkerController,
	eventController *controllers.EventController,
	notificationController *controllers.NotificationController,
	masterController *controllers.MasterController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRoutes(r, accountController, cliqueController, markerController,
		eventController, notificationController, masterController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	cliqueController *controllers.CliqueController,
	markerController *controllers.MarkerController,
	eventController *controllers.EventController,
	notificationController *controllers.NotificationController,
	masterController *controllers.MasterController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	me := r.Group("/accounts", middleware.JWTAuthMiddleware())
	me.GET("/me", accountController.Profile)
	me.PUT("/me", accountController.UpdateProfile)
	me.PUT("/me/password", accountController.ChangePassword)
	me.POST("/me/password/verify", accountController.VerifyPassword)
	me.PUT("/me/picture", accountController.UpdatePicture)
	me.GET("/overview", accountController.Overview)
	me.DELETE("/me", accountController.DeleteAccount)

	cliques := r.Group("/cliques", middleware.JWTAuthMiddleware())
	cliques.POST("", cliqueController.Create)
	cliques.GET("/feed", cliqueController.Feed)
	cliques.GET("/search", cliqueController.Search)
	cliques.GET("/autocomplete", cliqueController.Autocomplete)
	cliques.POST("/invite", cliqueController.Invite)
	cliques.POST("/invitations/:notificationId/accept", cliqueController.AcceptInvite)
	cliques.POST("/requests/:notificationId/accept", cliqueController.AcceptJoinRequest)
	cliques.POST("/:cliqueId/join", cliqueController.Join)
	cliques.POST("/:cliqueId/request", cliqueController.RequestJoin)
	cliques.POST("/:cliqueId/leave", cliqueController.Leave)
	cliques.DELETE("/:cliqueId/members/:userId", cliqueController.Kick)
	cliques.POST("/:cliqueId/members/:userId/ban", cliqueController.Ban)
	cliques.DELETE("/:cliqueId/members/:userId/ban", cliqueController.Unban)
	cliques.POST("/:cliqueId/members/:userId/admin-invite", cliqueController.InviteAdmin)
	cliques.PUT("/:cliqueId/icon", cliqueController.UpdateIcon)
	cliques.PUT("/:cliqueId/visibility", cliqueController.UpdateVisibility)
	cliques.DELETE("/:cliqueId", cliqueController.Delete)
	cliques.GET("/:cliqueId/dashboard", cliqueController.Dashboard)

	markers := r.Group("/markers", middleware.JWTAuthMiddleware())
	markers.GET("/map", markerController.Map)
	markers.POST("", markerController.Add)
	markers.POST("/:markerId/reviews", markerController.Rate)
	markers.PUT("/:markerId/reviews", markerController.UpdateReview)
	markers.DELETE("/reviews/:reviewId", markerController.DeleteReview)
	markers.GET("/reviews/:reviewId/only", markerController.IsOnlyReview)
	markers.POST("/:markerId/cliques/:cliqueId/events", eventController.Add)
	markers.GET("/:markerId/events", eventController.ListOwnForMarker)

	events := r.Group("/events", middleware.JWTAuthMiddleware())
	events.PUT("/:eventId", eventController.Update)
	events.DELETE("/:eventId", eventController.Delete)

	notifications := r.Group("/notifications", middleware.JWTAuthMiddleware())
	notifications.GET("", notificationController.List)
	notifications.DELETE("/:notificationId", notificationController.Delete)
	notifications.POST("/report", notificationController.Report)

	master := r.Group("/master", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(utils.RoleMaster))
	master.GET("/users", masterController.ListUsers)
	master.PUT("/users/:userId", masterController.EditUser)
	master.DELETE("/users/:userId", masterController.DeleteUser)
	master.GET("/cliques", masterController.ListCliques)
	master.GET("/cliques/:cliqueId/map", masterController.CliqueMap)
	master.GET("/cliques/:cliqueId/users/:userId/reviews", masterController.UserReviewsMap)
	master.GET("/cliques/:cliqueId/users/:userId/events", masterController.UserEventsMap)
	master.PUT("/cliques/:cliqueId/admin/:userId", masterController.TransferAdmin)
	master.DELETE("/markers/:markerId", masterController.RemoveMarker)
	master.DELETE("/reviews/:reviewId", masterController.RemoveReview)
	master.GET("/reports", masterController.ListReports)
}
