package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wearluxe/internal/mailer"
	"wearluxe/internal/models"
)

/* =========================
   LIST ORDERS
========================= */

// GetOrders lists all orders newest first, optionally filtered by ?status=.
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}
		if statusStr := strings.TrimSpace(c.Query("status")); statusStr != "" {
			status := models.OrderStatus(statusStr)
			if !status.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown status: "+statusStr)
				return
			}
			filter["status"] = status
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d orders", route, len(orders))
		c.JSON(http.StatusOK, orders)
	}
}

/* =========================
   STATUS TRANSITION
========================= */

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the verification lifecycle.
// Transitions to paid and failed notify the customer; mail failure never
// fails the transition.
func UpdateOrderStatus(db *mongo.Database, sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		target := models.OrderStatus(strings.TrimSpace(req.Status))
		if !target.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown status: "+req.Status)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !order.Status.CanTransitionTo(target) {
			respondWithError(c, http.StatusConflict, route,
				"illegal transition from "+string(order.Status)+" to "+string(target))
			return
		}

		now := time.Now()
		// guard on the current status so a concurrent admin action cannot
		// apply the same transition twice
		res, err := db.Collection("orders").UpdateOne(ctx,
			bson.M{"_id": orderID, "status": order.Status},
			bson.M{"$set": bson.M{"status": target, "updatedAt": now}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusConflict, route, "order status changed concurrently")
			return
		}

		order.Status = target
		order.UpdatedAt = now

		switch target {
		case models.OrderStatusPaid:
			if err := sender.Send(mailer.PaymentConfirmed(order)); err != nil {
				log.Printf("[%s] [WARN] payment-confirmed mail for %s failed: %v", route, order.ReceiptNumber, err)
			}
		case models.OrderStatusFailed:
			if err := sender.Send(mailer.PaymentFailed(order)); err != nil {
				log.Printf("[%s] [WARN] payment-failed mail for %s failed: %v", route, order.ReceiptNumber, err)
			}
		}

		log.Printf("[%s] order %s -> %s", route, order.ReceiptNumber, target)
		c.JSON(http.StatusOK, order)
	}
}
