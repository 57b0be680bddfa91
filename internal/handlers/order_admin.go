package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bengol-backend/internal/auth"
	"bengol-backend/internal/models"
)

func findOrderByID(ctx context.Context, db *mongo.Database, orderID string) (models.Order, error) {
	var order models.Order
	err := db.Collection("orders").FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	return order, err
}

func updateOrder(ctx context.Context, db *mongo.Database, orderID string, set bson.M) error {
	set["updatedAt"] = time.Now()
	_, err := db.Collection("orders").UpdateOne(ctx, bson.M{"orderId": orderID}, bson.M{"$set": set})
	return err
}

// ConfirmOrder moves a PLACED order to CONFIRMED.
func ConfirmOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/confirm"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
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

		if err := confirmableFrom(order.Status); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := updateOrder(ctx, db, order.OrderID, bson.M{"status": models.StatusConfirmed}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to confirm order")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order confirmed successfully",
		})
	}
}

type assignPartnerRequest struct {
	PartnerID string `json:"partnerId" binding:"required"`
}

// AssignDeliveryPartner targets an ACTIVE delivery partner at a CONFIRMED
// order. Re-targeting while still ASSIGNED is allowed.
func AssignDeliveryPartner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/assign"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req assignPartnerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "partnerId is required")
			return
		}

		partnerID, err := primitive.ObjectIDFromHex(req.PartnerID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid partnerId")
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

		if err := assignableFrom(order.Status); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var partner models.DeliveryPartner
		err = db.Collection("delivery_partners").FindOne(ctx, bson.M{"_id": partnerID}).Decode(&partner)
		if err == mongo.ErrNoDocuments || (err == nil && partner.Status != models.PartnerStatusActive) {
			respondWithError(c, http.StatusNotFound, route, "Delivery partner not found or inactive")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		assignment := models.DeliveryAssignment{
			PartnerID:  partner.ID,
			AssignedBy: assignerID(currentActor(c)),
			AssignedAt: time.Now(),
		}

		set := bson.M{
			"delivery": assignment,
			"status":   models.StatusAssigned,
		}
		if err := updateOrder(ctx, db, order.OrderID, set); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to assign delivery partner")
			return
		}

		log.Printf("[%s] order %s assigned to partner %s", route, order.OrderID, partner.ID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Delivery partner assigned successfully",
		})
	}
}

// assignerID records who assigned the partner: the employee business id, or
// the admin's own id when an admin assigns directly.
func assignerID(actor auth.Actor) string {
	switch a := actor.(type) {
	case auth.Employee:
		return a.EmployeeID
	case auth.Admin:
		return a.UserID
	}
	return ""
}

// CancelOrder cancels an order that has not yet shipped. CANCELLED is
// terminal; no refund flow exists, only the status is recorded.
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/cancel"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
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

		if err := cancellableFrom(order.Status); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := updateOrder(ctx, db, order.OrderID, bson.M{"status": models.StatusCancelled}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to cancel order")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order cancelled successfully",
		})
	}
}

// CompletePayment flags the due amount as settled. It is independent of the
// status machine and accepted in any order state.
func CompletePayment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:orderId/complete-payment"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
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

		if err := updateOrder(ctx, db, order.OrderID, bson.M{"paymentStatus": models.PaymentStatusCompleted}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to update payment")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment marked as completed",
		})
	}
}
