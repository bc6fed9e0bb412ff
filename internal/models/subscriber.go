package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NewsletterSubscriber struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	DiscountCode string             `bson:"discountCode,omitempty" json:"discountCode,omitempty"`
	SubscribedAt time.Time          `bson:"subscribedAt" json:"subscribedAt"`
}
