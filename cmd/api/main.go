package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/monishaRema/zep-shift-server/internal/database"
	"github.com/monishaRema/zep-shift-server/internal/handlers"
	"github.com/monishaRema/zep-shift-server/internal/middleware"
	"github.com/monishaRema/zep-shift-server/internal/models"
	"github.com/monishaRema/zep-shift-server/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx := context.Background()

	verifier, err := services.NewVerifier(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}

	riderCache, err := services.NewRiderCache(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	gateway := services.NewStripeGateway()

	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/health", handlers.HealthCheck(db))

	auth := middleware.RequireAuth(verifier)
	admin := middleware.AdminOnly(db)

	riders := r.Group("/riders")
	{
		riders.POST("", auth, handlers.RegisterRider(db))
		riders.GET("", auth, handlers.GetRiders(db))
		riders.GET("/pending-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusPending))
		riders.GET("/active-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusActive))
		riders.GET("/deactivated-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusDeactivated))
		riders.GET("/rejected-riders", auth, handlers.GetRidersByStatus(db, models.RiderStatusRejected))
		riders.GET("/available", handlers.GetAvailableRiders(db, riderCache))
		riders.PATCH("/:id", auth, handlers.UpdateRiderStatus(db, riderCache))
	}

	parcels := r.Group("/parcels")
	{
		parcels.GET("", handlers.GetParcels(db))
		parcels.GET("/all-parcels", handlers.GetAllParcels(db))
		parcels.GET("/:id", handlers.GetParcel(db))
		parcels.POST("", handlers.CreateParcel(db))
		parcels.DELETE("/:id", handlers.DeleteParcel(db))
		parcels.PATCH("/assign/:id", auth, admin, handlers.AssignRider(db, riderCache))
	}

	tracking := r.Group("/tracking")
	{
		tracking.POST("", handlers.CreateTracking(db, hub))
		tracking.GET("", handlers.GetTracking(db))
		tracking.GET("/ws", handlers.TrackingFeed(hub))
	}

	payments := r.Group("/payments")
	{
		payments.POST("/create-payment-intent", handlers.CreatePaymentIntent(gateway))
		payments.POST("", auth, handlers.CreatePayment(db))
		payments.GET("", auth, handlers.GetPayments(db))
		payments.GET("/parcel/:parcelId", handlers.GetParcelPayments(db))
	}

	users := r.Group("/users")
	{
		users.POST("", handlers.UpsertUser(db))
		users.GET("/search", auth, admin, handlers.SearchUsers(db))
		users.PATCH("/:id/role", auth, admin, handlers.UpdateUserRole(db))
		users.GET("/role", auth, handlers.GetUserRole(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
