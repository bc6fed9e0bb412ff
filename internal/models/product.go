package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories are a fixed set, not a stored collection.
const (
	CategoryBags        = "bags"
	CategoryAccessories = "accessories"
	CategoryApparel     = "apparel"
	CategoryFootwear    = "footwear"
	CategoryJewelry     = "jewelry"
)

var productCategories = map[string]struct{}{
	CategoryBags:        {},
	CategoryAccessories: {},
	CategoryApparel:     {},
	CategoryFootwear:    {},
	CategoryJewelry:     {},
}

func ValidCategory(category string) bool {
	_, ok := productCategories[category]
	return ok
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	PriceMinor    int64              `bson:"priceMinor" json:"priceMinor"`
	Category      string             `bson:"category" json:"category"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ImagePublicID string             `bson:"imagePublicId,omitempty" json:"-"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
