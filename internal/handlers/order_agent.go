package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bengol-backend/internal/auth"
	"bengol-backend/internal/config"
	"bengol-backend/internal/database"
	"bengol-backend/internal/models"
)

type placeOrderRequest struct {
	ConsumerID  string                `json:"consumerId" binding:"required"`
	Products    []orderProductRequest `json:"products" binding:"required"`
	PaidAmount  float64               `json:"paidAmount"`
	PaymentMode string                `json:"paymentMode" binding:"required"`
	Latitude    *float64              `json:"latitude" binding:"required"`
	Longitude   *float64              `json:"longitude" binding:"required"`
}

// PlaceOrder creates an order on behalf of a store the agent registered.
func PlaceOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		agent, ok := currentActor(c).(auth.Agent)
		if !ok {
			respondWithError(c, http.StatusForbidden, route, "Agent access only")
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "All required fields must be provided")
			return
		}

		if !validPaymentMode(req.PaymentMode) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid payment mode")
			return
		}

		products, totalAmount, err := buildOrderProducts(req.Products)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := validatePaidAmount(req.PaidAmount, totalAmount); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Ownership check: the store must exist and be registered by this agent.
		err = db.Collection("stores").FindOne(ctx, bson.M{
			"consumerId":   req.ConsumerID,
			"registeredBy": agent.AgentID,
		}).Err()
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusForbidden, route,
				"You are not allowed to place order for this store or the store does not exist")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		now := time.Now()
		year := now.Year()

		serial, err := database.NextOrderSerial(ctx, db, year)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		order := models.Order{
			OrderID:     database.FormatOrderID(year, serial),
			ConsumerID:  req.ConsumerID,
			AgentID:     agent.AgentID,
			Products:    products,
			TotalAmount: totalAmount,
			PaidAmount:  req.PaidAmount,
			DueAmount:   totalAmount - req.PaidAmount,
			PaymentMode: req.PaymentMode,
			DueDate:     now.Add(config.AppEnv.OrderDueWindow),
			Status:      models.StatusPlaced,
			OrderLocation: models.OrderLocation{
				Latitude:  *req.Latitude,
				Longitude: *req.Longitude,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := db.Collection("orders").InsertOne(ctx, order); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "Order id already allocated, retry")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] order %s placed by agent %s for %s", route, order.OrderID, agent.AgentID, order.ConsumerID)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully",
			"orderId": order.OrderID,
		})
	}
}

// GetMyOrders lists orders placed by the calling agent, newest first.
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/my-orders"
		defer handlePanic(c, route)

		agent, ok := currentActor(c).(auth.Agent)
		if !ok {
			respondWithError(c, http.StatusForbidden, route, "Agent access only")
			return
		}

		orders, err := findOrders(c, db, bson.M{"agentId": agent.AgentID})
		if errors.Is(err, errInvalidPagination) {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch orders")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(orders),
			"orders":  orders,
		})
	}
}
