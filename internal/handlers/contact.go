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

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateContactMessage stores a contact-form submission and forwards it to
// the shop inbox. Mail failure never fails the submission.
func CreateContactMessage(db *mongo.Database, sender mailer.Sender, shopInbox string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /contact"
		defer handlePanic(c, route)

		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		now := time.Now()
		message := models.ContactMessage{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			Subject:   strings.TrimSpace(req.Subject),
			Message:   strings.TrimSpace(req.Message),
			Status:    models.ContactStatusNew,
			Priority:  models.ContactPriorityMedium,
			Source:    "website",
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("contact_messages").InsertOne(ctx, message)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			message.ID = id
		}

		if err := sender.Send(mailer.ContactNotification(shopInbox, message)); err != nil {
			log.Printf("[%s] [WARN] inbox notification failed: %v", route, err)
		}

		c.JSON(http.StatusCreated, gin.H{"message": "message received"})
	}
}

// GetContactMessages lists messages newest first, optionally filtered by
// ?status=.
func GetContactMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/contact-messages"
		defer handlePanic(c, route)

		filter := bson.M{}
		if statusStr := strings.TrimSpace(c.Query("status")); statusStr != "" {
			status := models.ContactStatus(statusStr)
			if !status.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown status: "+statusStr)
				return
			}
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("contact_messages").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.ContactMessage, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

type updateContactMessageRequest struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

func UpdateContactMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/contact-messages/:id"
		defer handlePanic(c, route)

		messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateContactMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Status == nil && req.Priority == nil {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.Status != nil {
			status := models.ContactStatus(strings.TrimSpace(*req.Status))
			if !status.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown status: "+*req.Status)
				return
			}
			set["status"] = status
		}
		if req.Priority != nil {
			priority := models.ContactPriority(strings.TrimSpace(*req.Priority))
			if !priority.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown priority: "+*req.Priority)
				return
			}
			set["priority"] = priority
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("contact_messages").UpdateByID(ctx, messageID, bson.M{"$set": set})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "message not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "updated"})
	}
}
