package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"bengol-backend/internal/config"
	"bengol-backend/internal/database"
	"bengol-backend/internal/handlers"
	"bengol-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureStoreIndexes(db); err != nil {
		log.Printf("⚠️ store index warning: %v", err)
	}
	if err := database.EnsureDeliveryPartnerIndexes(db); err != nil {
		log.Printf("⚠️ delivery partner index warning: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.GET("/healthz", handlers.Healthz(db))

	orders := r.Group("/orders")
	orders.Use(middleware.AuthGuard(config.AppEnv.JWTSecret))
	{
		orders.POST("", middleware.AgentOnly(), handlers.PlaceOrder(db))
		orders.GET("/store/:consumerId", handlers.GetOrdersByStore(db))
		orders.GET("/my-orders", middleware.AgentOnly(), handlers.GetMyOrders(db))
		orders.GET("/all", middleware.BackOfficeOnly(), handlers.GetAllOrders(db))

		orders.PUT("/:orderId/confirm", middleware.BackOfficeOnly(), handlers.ConfirmOrder(db))
		orders.PUT("/:orderId/assign", middleware.BackOfficeOnly(), handlers.AssignDeliveryPartner(db))
		orders.PUT("/:orderId/cancel", middleware.BackOfficeOnly(), handlers.CancelOrder(db))
		orders.PUT("/:orderId/complete-payment", middleware.BackOfficeOnly(), handlers.CompletePayment(db))

		orders.PUT("/:orderId/delivery-status", middleware.PartnerOnly(), handlers.UpdateDeliveryStatus(db))
		orders.PUT("/:orderId/generate-otp", middleware.PartnerOnly(), handlers.GenerateDeliveryOtp(db))
		orders.PUT("/:orderId/verify-otp", middleware.PartnerOnly(), handlers.VerifyDeliveryOtp(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
