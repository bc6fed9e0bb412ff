package mailer

import (
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wearluxe/internal/models"
)

type fakeSender struct {
	sent    []Message
	failFor map[string]bool
}

func (f *fakeSender) Send(msg Message) error {
	if f.failFor[msg.To] {
		return errors.New("smtp refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestSendToAllCountsFailuresWithoutAborting(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{
		"b@example.com": true,
		"d@example.com": true,
	}}
	recipients := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com", "e@example.com"}

	result := SendToAll(sender, recipients, func(to string) Message {
		return Message{To: to, Subject: "hi"}
	})

	if result.SuccessCount != 3 {
		t.Errorf("SuccessCount = %d, want 3", result.SuccessCount)
	}
	if result.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", result.ErrorCount)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(result.Errors))
	}
	if !strings.HasPrefix(result.Errors[0], "b@example.com:") {
		t.Errorf("first error should name the failing recipient, got %q", result.Errors[0])
	}
	if len(sender.sent) != 3 {
		t.Errorf("sent %d messages, want 3", len(sender.sent))
	}
	// later recipients must still be attempted after a failure
	if sender.sent[len(sender.sent)-1].To != "e@example.com" {
		t.Errorf("last delivered recipient = %s, want e@example.com", sender.sent[len(sender.sent)-1].To)
	}
}

func TestSendToAllEmptyRecipients(t *testing.T) {
	result := SendToAll(&fakeSender{}, nil, func(to string) Message { return Message{To: to} })
	if result.SuccessCount != 0 || result.ErrorCount != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result for empty recipients: %+v", result)
	}
}

func sampleOrder() models.Order {
	return models.Order{
		ID:            primitive.NewObjectID(),
		ReceiptNumber: "WLX-2026-04213",
		Customer: models.OrderCustomer{
			Name:  "Jane",
			Email: "jane@x.com",
			Phone: "0700000000",
		},
		Items: []models.OrderItem{
			{Name: "Tote", UnitPriceMinor: 1250000, Quantity: 1, SubtotalMinor: 1250000},
		},
		TotalMinor: 1250000,
		Status:     models.OrderStatusPendingVerification,
	}
}

func TestOrderConfirmationRendersReceiptAndTotal(t *testing.T) {
	msg := OrderConfirmation(sampleOrder())

	if msg.To != "jane@x.com" {
		t.Errorf("To = %s, want jane@x.com", msg.To)
	}
	if !strings.Contains(msg.Subject, "WLX-2026-04213") {
		t.Errorf("subject missing receipt: %q", msg.Subject)
	}
	for _, body := range []string{msg.Text, msg.HTML} {
		if !strings.Contains(body, "12500.00") {
			t.Errorf("body missing major-unit total: %q", body)
		}
		if !strings.Contains(body, "Tote") {
			t.Errorf("body missing item name: %q", body)
		}
	}
}

func TestPaymentTemplatesAddressCustomer(t *testing.T) {
	order := sampleOrder()

	confirmed := PaymentConfirmed(order)
	if !strings.Contains(confirmed.Text, "Jane") || !strings.Contains(confirmed.Text, "confirmed") {
		t.Errorf("unexpected confirmation text: %q", confirmed.Text)
	}

	failed := PaymentFailed(order)
	if !strings.Contains(failed.Text, order.ReceiptNumber) {
		t.Errorf("failed text missing receipt: %q", failed.Text)
	}
	if failed.To != order.Customer.Email {
		t.Errorf("failed To = %s", failed.To)
	}
}

func TestNewsletterWelcomeIncludesDiscountCode(t *testing.T) {
	msg := NewsletterWelcome("sub@example.com", "LUXE-AB12CD")
	if !strings.Contains(msg.Text, "LUXE-AB12CD") || !strings.Contains(msg.HTML, "LUXE-AB12CD") {
		t.Fatalf("discount code missing from welcome mail")
	}
}

func TestNewProductAnnouncementOmitsImageWhenAbsent(t *testing.T) {
	product := models.Product{Name: "Silk Scarf", PriceMinor: 45000}
	msg := NewProductAnnouncement("sub@example.com", product)
	if strings.Contains(msg.HTML, "<img") {
		t.Errorf("expected no img tag without an image url: %q", msg.HTML)
	}

	product.ImageURL = "https://cdn.example.com/scarf.jpg"
	msg = NewProductAnnouncement("sub@example.com", product)
	if !strings.Contains(msg.HTML, "https://cdn.example.com/scarf.jpg") {
		t.Errorf("expected img url in html: %q", msg.HTML)
	}
}
