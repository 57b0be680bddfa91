package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bengol-backend/internal/auth"
	"bengol-backend/internal/config"
	"bengol-backend/internal/models"
	"bengol-backend/internal/otp"
)

type deliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateDeliveryStatus advances an order along the partner sequence
// ASSIGNED -> SHIPPED -> OUT_FOR_DELIVERY. Only the assigned partner may
// call it, and DELIVERED is rejected here in favor of the OTP path.
func UpdateDeliveryStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/delivery-status"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		partner, ok := currentActor(c).(auth.DeliveryPartner)
		if !ok {
			respondWithError(c, http.StatusForbidden, route, "Delivery partner access only")
			return
		}

		var req deliveryStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "status is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := findOrderByID(ctx, db, c.Param("orderId"))
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := partnerMayUpdate(&order, partner.UserID); err != nil {
			respondWithError(c, http.StatusForbidden, route, err.Error())
			return
		}

		if err := checkDeliveryTransition(order.Status, req.Status); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := updateOrder(ctx, db, order.OrderID, bson.M{"status": req.Status}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to update status")
			return
		}

		log.Printf("[%s] order %s moved %s -> %s", route, order.OrderID, order.Status, req.Status)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Status updated successfully",
		})
	}
}

// GenerateDeliveryOtp issues a fresh delivery code for an order that is out
// for delivery. Any prior unconsumed code is overwritten.
func GenerateDeliveryOtp(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/generate-otp"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := findOrderByID(ctx, db, c.Param("orderId"))
		if err != nil && err != mongo.ErrNoDocuments {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err == mongo.ErrNoDocuments || order.Status != models.StatusOutForDelivery {
			respondWithError(c, http.StatusBadRequest, route, "Order not ready for delivery")
			return
		}

		code, err := otp.Generate()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to generate OTP")
			return
		}

		deliveryOtp := models.DeliveryOTP{
			Code:      code,
			ExpiresAt: time.Now().Add(config.AppEnv.DeliveryOtpTTL),
			Verified:  false,
		}

		if err := updateOrder(ctx, db, order.OrderID, bson.M{"deliveryOtp": deliveryOtp}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to generate OTP")
			return
		}

		// Stand-in for the SMS gateway.
		log.Printf("[%s] delivery OTP for order %s: %s", route, order.OrderID, code)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "OTP generated successfully",
		})
	}
}

type verifyOtpRequest struct {
	Otp string `json:"otp" binding:"required"`
}

// VerifyDeliveryOtp completes delivery. This is the only path to DELIVERED.
func VerifyDeliveryOtp(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/verify-otp"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req verifyOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "otp is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := findOrderByID(ctx, db, c.Param("orderId"))
		if err != nil && err != mongo.ErrNoDocuments {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err == mongo.ErrNoDocuments || order.DeliveryOTP == nil {
			respondWithError(c, http.StatusBadRequest, route, "OTP not generated")
			return
		}

		if err := checkDeliveryOtp(&order, req.Otp, time.Now()); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		set := bson.M{
			"status":               models.StatusDelivered,
			"deliveryOtp.verified": true,
		}
		if err := updateOrder(ctx, db, order.OrderID, set); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to verify OTP")
			return
		}

		log.Printf("[%s] order %s delivered", route, order.OrderID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order delivered successfully",
		})
	}
}
