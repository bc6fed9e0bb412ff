package handlers

import (
	"regexp"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wearluxe/internal/models"
)

var receiptPattern = regexp.MustCompile(`^WLX-\d{4}-\d{5}$`)

func TestGenerateReceiptNumberFormat(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		receipt := generateReceiptNumber(now)
		if !receiptPattern.MatchString(receipt) {
			t.Fatalf("receipt %q does not match WLX-<year>-<5 digits>", receipt)
		}
		if receipt[:9] != "WLX-2026-" {
			t.Fatalf("receipt %q does not carry the current year", receipt)
		}
	}
}

func validCheckout() checkoutRequest {
	return checkoutRequest{
		Items: []checkoutItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Name: "Tote", Price: 12500, Quantity: 1},
		},
		Name:  "Jane",
		Email: "jane@x.com",
		Phone: "0700000000",
	}
}

func TestBuildOrderFromCartEndToEnd(t *testing.T) {
	now := time.Now()
	order, err := buildOrderFromCart(validCheckout(), now)
	if err != nil {
		t.Fatalf("buildOrderFromCart returned error: %v", err)
	}

	if order.Status != models.OrderStatusPendingVerification {
		t.Errorf("status = %s, want pending_verification", order.Status)
	}
	if len(order.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(order.Items))
	}
	if order.TotalMinor != 1250000 {
		t.Errorf("totalMinor = %d, want 1250000", order.TotalMinor)
	}
	if order.Items[0].SubtotalMinor != 1250000 {
		t.Errorf("subtotalMinor = %d, want 1250000", order.Items[0].SubtotalMinor)
	}
	if order.PaymentMethod != models.PaymentMethodManualTransfer {
		t.Errorf("paymentMethod = %s", order.PaymentMethod)
	}
	if !receiptPattern.MatchString(order.ReceiptNumber) {
		t.Errorf("receipt %q has wrong format", order.ReceiptNumber)
	}
}

func TestBuildOrderTotalEqualsSumOfSubtotals(t *testing.T) {
	req := validCheckout()
	req.Items = []checkoutItemRequest{
		{ProductID: primitive.NewObjectID().Hex(), Name: "Tote", Price: 125.50, Quantity: 2},
		{ProductID: primitive.NewObjectID().Hex(), Name: "Scarf", Price: 49.99, Quantity: 3},
		{ProductID: primitive.NewObjectID().Hex(), Name: "Belt", Price: 0, Quantity: 1},
	}

	order, err := buildOrderFromCart(req, time.Now())
	if err != nil {
		t.Fatalf("buildOrderFromCart returned error: %v", err)
	}

	var sum int64
	for _, item := range order.Items {
		if item.SubtotalMinor != item.UnitPriceMinor*int64(item.Quantity) {
			t.Errorf("item %s: subtotal %d != unit %d * qty %d", item.Name, item.SubtotalMinor, item.UnitPriceMinor, item.Quantity)
		}
		sum += item.SubtotalMinor
	}
	if order.TotalMinor != sum {
		t.Errorf("totalMinor %d != sum of subtotals %d", order.TotalMinor, sum)
	}
	// 2*12550 + 3*4999 + 0
	if order.TotalMinor != 40097 {
		t.Errorf("totalMinor = %d, want 40097", order.TotalMinor)
	}
}

func TestBuildOrderFromCartValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*checkoutRequest)
	}{
		{"empty cart", func(r *checkoutRequest) { r.Items = nil }},
		{"missing name", func(r *checkoutRequest) { r.Name = "  " }},
		{"missing email", func(r *checkoutRequest) { r.Email = "" }},
		{"missing phone", func(r *checkoutRequest) { r.Phone = "" }},
		{"zero quantity", func(r *checkoutRequest) { r.Items[0].Quantity = 0 }},
		{"negative quantity", func(r *checkoutRequest) { r.Items[0].Quantity = -2 }},
		{"negative price", func(r *checkoutRequest) { r.Items[0].Price = -5 }},
		{"bad product id", func(r *checkoutRequest) { r.Items[0].ProductID = "not-an-id" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckout()
			tt.mutate(&req)
			if _, err := buildOrderFromCart(req, time.Now()); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBuildOrderNormalizesContactFields(t *testing.T) {
	req := validCheckout()
	req.Email = "  JANE@X.com "
	req.Name = " Jane "

	order, err := buildOrderFromCart(req, time.Now())
	if err != nil {
		t.Fatalf("buildOrderFromCart returned error: %v", err)
	}
	if order.Customer.Email != "jane@x.com" {
		t.Errorf("email = %q, want lowercase trimmed", order.Customer.Email)
	}
	if order.Customer.Name != "Jane" {
		t.Errorf("name = %q, want trimmed", order.Customer.Name)
	}
}

func TestOrderStatusTransitionTable(t *testing.T) {
	allowed := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusPendingVerification, models.OrderStatusPaid},
		{models.OrderStatusPendingVerification, models.OrderStatusFailed},
		{models.OrderStatusFailed, models.OrderStatusPaid},
		{models.OrderStatusPaid, models.OrderStatusShipped},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Errorf("expected %s -> %s to be allowed", tt.from, tt.to)
		}
	}

	forbidden := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusShipped, models.OrderStatusPendingVerification},
		{models.OrderStatusShipped, models.OrderStatusPaid},
		{models.OrderStatusPaid, models.OrderStatusPendingVerification},
		{models.OrderStatusPaid, models.OrderStatusFailed},
		{models.OrderStatusFailed, models.OrderStatusShipped},
		{models.OrderStatusPendingVerification, models.OrderStatusShipped},
		{models.OrderStatusPendingVerification, models.OrderStatusPendingVerification},
	}
	for _, tt := range forbidden {
		if tt.from.CanTransitionTo(tt.to) {
			t.Errorf("expected %s -> %s to be rejected", tt.from, tt.to)
		}
	}
}

func TestScreenshotPublicIDEmbedsOrderAndTime(t *testing.T) {
	orderID := primitive.NewObjectID()
	now := time.Unix(1756600000, 0)
	id := screenshotPublicID(orderID, now)
	want := "payments/" + orderID.Hex() + "-1756600000"
	if id != want {
		t.Fatalf("screenshotPublicID = %q, want %q", id, want)
	}
}
