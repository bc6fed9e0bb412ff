package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wearluxe/internal/models"
	"wearluxe/internal/money"
)

/* =========================
   REQUEST DTOs
========================= */

type checkoutItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required"`
}

type checkoutRequest struct {
	Items           []checkoutItemRequest `json:"items" binding:"required"`
	Name            string                `json:"name" binding:"required"`
	Email           string                `json:"email" binding:"required"`
	Phone           string                `json:"phone" binding:"required"`
	DeliveryAddress string                `json:"deliveryAddress"`
	TransactionCode string                `json:"transactionCode"`
}

/* =========================
   RECEIPT NUMBER
========================= */

// generateReceiptNumber builds WLX-<year>-<5-digit suffix>. The suffix is
// random; the unique index on receiptNumber catches collisions and the
// caller retries with a fresh number.
func generateReceiptNumber(now time.Time) string {
	return fmt.Sprintf("WLX-%d-%05d", now.Year(), rand.Intn(100000))
}

/* =========================
   BUILD ORDER
========================= */

// buildOrderFromCart validates the checkout payload and assembles the order
// document. Unit prices arrive in major units and are converted to minor
// units here; subtotals and the total are always recomputed server-side.
func buildOrderFromCart(req checkoutRequest, now time.Time) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	if name == "" || email == "" || phone == "" {
		return models.Order{}, errors.New("name, email and phone are required")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var total int64

	for _, line := range req.Items {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(line.ProductID))
		if err != nil {
			return models.Order{}, errors.New("invalid productId")
		}
		if line.Quantity <= 0 {
			return models.Order{}, errors.New("quantity must be greater than zero")
		}
		if line.Price < 0 {
			return models.Order{}, errors.New("price must not be negative")
		}

		unitMinor := money.ToMinor(line.Price)
		subtotal := unitMinor * int64(line.Quantity)

		items = append(items, models.OrderItem{
			ProductID:      productID,
			Name:           strings.TrimSpace(line.Name),
			UnitPriceMinor: unitMinor,
			Quantity:       line.Quantity,
			SubtotalMinor:  subtotal,
		})
		total += subtotal
	}

	return models.Order{
		ReceiptNumber: generateReceiptNumber(now),
		Customer: models.OrderCustomer{
			Name:  name,
			Email: email,
			Phone: phone,
		},
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Items:           items,
		TotalMinor:      total,
		Status:          models.OrderStatusPendingVerification,
		PaymentMethod:   models.PaymentMethodManualTransfer,
		TransactionCode: strings.TrimSpace(req.TransactionCode),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// screenshotPublicID names the payment-proof blob after the order and the
// upload moment.
func screenshotPublicID(orderID primitive.ObjectID, now time.Time) string {
	return fmt.Sprintf("payments/%s-%d", orderID.Hex(), now.Unix())
}
