package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPendingVerification OrderStatus = "pending_verification"
	OrderStatusPaid                OrderStatus = "paid"
	OrderStatusFailed              OrderStatus = "failed"
	OrderStatusShipped             OrderStatus = "shipped"
)

// PaymentMethodManualTransfer is the only supported payment method: the
// customer transfers money out of band and an admin verifies the proof.
const PaymentMethodManualTransfer = "manual_transfer"

// orderTransitions is the authoritative transition table. A failed order may
// still be confirmed paid after the customer re-sends proof; shipped is
// terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingVerification: {OrderStatusPaid, OrderStatusFailed},
	OrderStatusFailed:              {OrderStatusPaid},
	OrderStatusPaid:                {OrderStatusShipped},
	OrderStatusShipped:             {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// OrderItem is a snapshot of a cart line at checkout time. Name and unit
// price are captured from the live product and never follow later edits.
type OrderItem struct {
	ProductID      primitive.ObjectID `bson:"productId" json:"productId"`
	Name           string             `bson:"name" json:"name"`
	UnitPriceMinor int64              `bson:"unitPriceMinor" json:"unitPriceMinor"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	SubtotalMinor  int64              `bson:"subtotalMinor" json:"subtotalMinor"`
}

// OrderCustomer captures the contact details supplied at checkout.
type OrderCustomer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Order defines the persisted order document. Items are embedded so the
// order and its lines are written in one insert.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiptNumber   string             `bson:"receiptNumber" json:"receiptNumber"`
	Customer        OrderCustomer      `bson:"customer" json:"customer"`
	DeliveryAddress string             `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalMinor      int64              `bson:"totalMinor" json:"totalMinor"`
	Status          OrderStatus        `bson:"status" json:"status"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	TransactionCode string             `bson:"transactionCode,omitempty" json:"transactionCode,omitempty"`
	ScreenshotURL   string             `bson:"screenshotUrl,omitempty" json:"screenshotUrl,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
