package mailer

import (
	"fmt"
	"strings"

	"wearluxe/internal/models"
	"wearluxe/internal/money"
)

// Templates are rendered inline with fmt.Sprintf. The shop sends a handful
// of short transactional mails; a template engine would be more moving
// parts than markup.

func OrderConfirmation(order models.Order) Message {
	var lines strings.Builder
	var htmlRows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "  %s x%d — %s\n", item.Name, item.Quantity, money.FormatMajor(item.SubtotalMinor))
		fmt.Fprintf(&htmlRows,
			"<tr><td>%s</td><td>%d</td><td align=\"right\">%s</td></tr>",
			item.Name, item.Quantity, money.FormatMajor(item.SubtotalMinor))
	}

	text := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order.\n\nReceipt: %s\n\n%s\nTotal: %s\n\n"+
			"Your payment is being verified. We will confirm it shortly.\n\nWearLuxe",
		order.Customer.Name, order.ReceiptNumber, lines.String(), money.FormatMajor(order.TotalMinor))

	html := fmt.Sprintf(
		"<h2>Thank you for your order, %s</h2>"+
			"<p>Receipt: <strong>%s</strong></p>"+
			"<table width=\"100%%\">%s</table>"+
			"<p>Total: <strong>%s</strong></p>"+
			"<p>Your payment is being verified. We will confirm it shortly.</p>"+
			"<p>WearLuxe</p>",
		order.Customer.Name, order.ReceiptNumber, htmlRows.String(), money.FormatMajor(order.TotalMinor))

	return Message{
		To:      order.Customer.Email,
		Subject: fmt.Sprintf("Order %s received — WearLuxe", order.ReceiptNumber),
		Text:    text,
		HTML:    html,
	}
}

func PaymentConfirmed(order models.Order) Message {
	text := fmt.Sprintf(
		"Dear %s,\n\nYour payment of %s for order %s has been confirmed.\n"+
			"We are preparing your items for dispatch.\n\nWearLuxe",
		order.Customer.Name, money.FormatMajor(order.TotalMinor), order.ReceiptNumber)
	html := fmt.Sprintf(
		"<h2>Payment confirmed</h2>"+
			"<p>Dear %s,</p>"+
			"<p>Your payment of <strong>%s</strong> for order <strong>%s</strong> has been confirmed. "+
			"We are preparing your items for dispatch.</p>"+
			"<p>WearLuxe</p>",
		order.Customer.Name, money.FormatMajor(order.TotalMinor), order.ReceiptNumber)
	return Message{
		To:      order.Customer.Email,
		Subject: fmt.Sprintf("Payment confirmed for %s — WearLuxe", order.ReceiptNumber),
		Text:    text,
		HTML:    html,
	}
}

func PaymentFailed(order models.Order) Message {
	text := fmt.Sprintf(
		"Dear %s,\n\nWe could not verify the payment for order %s.\n"+
			"Please reply to this email with your payment proof so we can try again.\n\nWearLuxe",
		order.Customer.Name, order.ReceiptNumber)
	html := fmt.Sprintf(
		"<h2>Payment verification failed</h2>"+
			"<p>Dear %s,</p>"+
			"<p>We could not verify the payment for order <strong>%s</strong>. "+
			"Please reply to this email with your payment proof so we can try again.</p>"+
			"<p>WearLuxe</p>",
		order.Customer.Name, order.ReceiptNumber)
	return Message{
		To:      order.Customer.Email,
		Subject: fmt.Sprintf("Payment issue with %s — WearLuxe", order.ReceiptNumber),
		Text:    text,
		HTML:    html,
	}
}

// ContactNotification forwards a contact-form submission to the shop inbox.
func ContactNotification(inbox string, msg models.ContactMessage) Message {
	text := fmt.Sprintf(
		"New contact message\n\nFrom: %s <%s>\nPhone: %s\nSubject: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message)
	html := fmt.Sprintf(
		"<h2>New contact message</h2>"+
			"<p><strong>From:</strong> %s &lt;%s&gt;<br>"+
			"<strong>Phone:</strong> %s<br>"+
			"<strong>Subject:</strong> %s</p>"+
			"<p>%s</p>",
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message)
	return Message{
		To:      inbox,
		Subject: fmt.Sprintf("[Contact] %s", msg.Subject),
		Text:    text,
		HTML:    html,
	}
}

func NewsletterWelcome(to, discountCode string) Message {
	text := fmt.Sprintf(
		"Welcome to the WearLuxe newsletter.\n\n"+
			"Your welcome discount code: %s\n\nWearLuxe",
		discountCode)
	html := fmt.Sprintf(
		"<h2>Welcome to WearLuxe</h2>"+
			"<p>Your welcome discount code: <strong>%s</strong></p>"+
			"<p>WearLuxe</p>",
		discountCode)
	return Message{
		To:      to,
		Subject: "Welcome to WearLuxe",
		Text:    text,
		HTML:    html,
	}
}

func NewProductAnnouncement(to string, product models.Product) Message {
	text := fmt.Sprintf(
		"New at WearLuxe: %s\n\n%s\n\nPrice: %s\n\nWearLuxe",
		product.Name, product.Description, money.FormatMajor(product.PriceMinor))
	htmlImage := ""
	if product.ImageURL != "" {
		htmlImage = fmt.Sprintf("<p><img src=\"%s\" alt=\"%s\" width=\"480\"></p>", product.ImageURL, product.Name)
	}
	html := fmt.Sprintf(
		"<h2>New at WearLuxe: %s</h2>%s"+
			"<p>%s</p>"+
			"<p>Price: <strong>%s</strong></p>"+
			"<p>WearLuxe</p>",
		product.Name, htmlImage, product.Description, money.FormatMajor(product.PriceMinor))
	return Message{
		To:      to,
		Subject: fmt.Sprintf("New arrival: %s — WearLuxe", product.Name),
		Text:    text,
		HTML:    html,
	}
}
