package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"wearluxe/internal/mailer"
	"wearluxe/internal/models"
)

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// generateDiscountCode issues the welcome code handed out on first
// subscribe.
func generateDiscountCode() string {
	return "LUXE-" + strings.ToUpper(uuid.NewString()[:8])
}

// Subscribe adds an email to the newsletter list. An already-active email
// is rejected; a previously deactivated one is reactivated in place so the
// subscriber keeps its id and discount code.
func Subscribe(db *mongo.Database, sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /newsletter/subscribe"
		defer handlePanic(c, route)

		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || !strings.Contains(email, "@") {
			respondWithError(c, http.StatusBadRequest, route, "a valid email is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.NewsletterSubscriber
		err := db.Collection("newsletter_subscribers").FindOne(ctx, bson.M{"email": email}).Decode(&existing)

		switch {
		case err == nil && existing.IsActive:
			respondWithError(c, http.StatusConflict, route, "email already subscribed")
			return

		case err == nil:
			// reactivate, same document
			update := bson.M{"isActive": true, "subscribedAt": time.Now()}
			if existing.DiscountCode == "" {
				existing.DiscountCode = generateDiscountCode()
				update["discountCode"] = existing.DiscountCode
			}
			if _, err := db.Collection("newsletter_subscribers").UpdateByID(ctx, existing.ID, bson.M{"$set": update}); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			existing.IsActive = true
			sendWelcome(sender, existing, route)
			c.JSON(http.StatusOK, gin.H{
				"message":      "subscription reactivated",
				"discountCode": existing.DiscountCode,
			})
			return

		case err == mongo.ErrNoDocuments:
			subscriber := models.NewsletterSubscriber{
				Email:        email,
				IsActive:     true,
				DiscountCode: generateDiscountCode(),
				SubscribedAt: time.Now(),
			}
			res, err := db.Collection("newsletter_subscribers").InsertOne(ctx, subscriber)
			if err != nil {
				// unique index closes the find/insert race
				if mongo.IsDuplicateKeyError(err) {
					respondWithError(c, http.StatusConflict, route, "email already subscribed")
					return
				}
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				subscriber.ID = id
			}
			sendWelcome(sender, subscriber, route)
			c.JSON(http.StatusCreated, gin.H{
				"message":      "subscribed",
				"discountCode": subscriber.DiscountCode,
			})
			return

		default:
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
	}
}

func sendWelcome(sender mailer.Sender, subscriber models.NewsletterSubscriber, route string) {
	if err := sender.Send(mailer.NewsletterWelcome(subscriber.Email, subscriber.DiscountCode)); err != nil {
		log.Printf("[%s] [WARN] welcome mail to %s failed: %v", route, subscriber.Email, err)
	}
}
