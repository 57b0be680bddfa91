package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bengol-backend/internal/auth"
	"bengol-backend/internal/models"
)

// findOrders runs a filtered order query sorted newest first, applying
// optional pagination when both page and limit query params are present.
func findOrders(c *gin.Context, db *mongo.Database, filter bson.M) ([]models.Order, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	if pageStr != "" && limitStr != "" {
		page, limit, err := parsePaginationParams(pageStr, limitStr)
		if err != nil {
			return nil, err
		}
		findOptions.
			SetSkip((page - 1) * limit).
			SetLimit(limit)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersByStore lists a store's orders. Agents only see orders they
// placed themselves; admins and employees see all of the store's orders.
func GetOrdersByStore(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/store/:consumerId"
		defer handlePanic(c, route)

		consumerID := c.Param("consumerId")
		if consumerID == "" {
			respondWithError(c, http.StatusBadRequest, route, "Consumer ID is required")
			return
		}

		filter := bson.M{"consumerId": consumerID}

		switch actor := currentActor(c).(type) {
		case auth.Agent:
			filter["agentId"] = actor.AgentID
		case auth.Admin, auth.Employee:
			// unrestricted
		default:
			respondWithError(c, http.StatusForbidden, route, "Access denied")
			return
		}

		orders, err := findOrders(c, db, filter)
		if errors.Is(err, errInvalidPagination) {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to fetch store orders")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"totalOrders": len(orders),
			"orders":      orders,
		})
	}
}

// GetAllOrders lists every order for back-office actors, newest first.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/all"
		defer handlePanic(c, route)

		orders, err := findOrders(c, db, bson.M{})
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
