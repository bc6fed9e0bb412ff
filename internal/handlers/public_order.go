package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"wearluxe/internal/mailer"
	"wearluxe/internal/models"
	"wearluxe/internal/storage"
)

const receiptInsertAttempts = 3

/* =========================
   CREATE ORDER
========================= */

// CreateOrder handles checkout. The order and its item snapshots are one
// document, so the insert is atomic; the payment screenshot is uploaded
// after the insert and is deliberately best-effort.
func CreateOrder(db *mongo.Database, uploader storage.Uploader, sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		req, screenshot, err := parseCheckoutRequest(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		order, err := buildOrderFromCart(req, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		inserted := false
		for attempt := 0; attempt < receiptInsertAttempts; attempt++ {
			res, err := db.Collection("orders").InsertOne(ctx, order)
			if err == nil {
				if id, ok := res.InsertedID.(primitive.ObjectID); ok {
					order.ID = id
				}
				inserted = true
				break
			}
			if mongo.IsDuplicateKeyError(err) {
				log.Printf("[%s] receipt collision on %s, regenerating", route, order.ReceiptNumber)
				order.ReceiptNumber = generateReceiptNumber(time.Now())
				continue
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if !inserted {
			respondWithError(c, http.StatusInternalServerError, route, "could not allocate receipt number")
			return
		}

		if screenshot != nil {
			attachScreenshot(ctx, db, uploader, &order, screenshot, route)
		}

		if err := sender.Send(mailer.OrderConfirmation(order)); err != nil {
			log.Printf("[%s] [WARN] confirmation mail for %s failed: %v", route, order.ReceiptNumber, err)
		}

		log.Printf("[%s] order %s created (%d items)", route, order.ReceiptNumber, len(order.Items))
		c.JSON(http.StatusCreated, gin.H{
			"orderId":       order.ID.Hex(),
			"receiptNumber": order.ReceiptNumber,
			"screenshotUrl": order.ScreenshotURL,
			"message":       "order created",
		})
	}
}

// parseCheckoutRequest accepts either a JSON body or a multipart form with
// an optional screenshot file. The multipart variant carries the cart lines
// as a JSON array in the "items" field.
func parseCheckoutRequest(c *gin.Context) (checkoutRequest, *multipart.FileHeader, error) {
	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return checkoutRequest{}, nil, errors.New("invalid request body")
		}
		return req, nil, nil
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		return checkoutRequest{}, nil, errors.New("invalid multipart body")
	}

	req := checkoutRequest{
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		Phone:           c.PostForm("phone"),
		DeliveryAddress: c.PostForm("deliveryAddress"),
		TransactionCode: c.PostForm("transactionCode"),
	}

	itemsRaw := c.PostForm("items")
	if strings.TrimSpace(itemsRaw) == "" {
		return checkoutRequest{}, nil, errors.New("items field is required")
	}
	if err := json.Unmarshal([]byte(itemsRaw), &req.Items); err != nil {
		return checkoutRequest{}, nil, errors.New("items field must be a JSON array")
	}

	file, err := c.FormFile("screenshot")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !strings.Contains(err.Error(), "no such file") {
			return checkoutRequest{}, nil, errors.New("invalid screenshot upload")
		}
		file = nil
	}

	return req, file, nil
}

// attachScreenshot uploads the payment proof and writes its URL back onto
// the order. Any failure is logged and swallowed: the checkout already
// succeeded.
func attachScreenshot(ctx context.Context, db *mongo.Database, uploader storage.Uploader, order *models.Order, file *multipart.FileHeader, route string) {
	in, err := file.Open()
	if err != nil {
		log.Printf("[%s] [WARN] screenshot open failed for %s: %v", route, order.ReceiptNumber, err)
		return
	}
	defer in.Close()

	url, err := uploader.Upload(ctx, in, screenshotPublicID(order.ID, time.Now()))
	if err != nil {
		log.Printf("[%s] [WARN] screenshot upload failed for %s: %v", route, order.ReceiptNumber, err)
		return
	}

	_, err = db.Collection("orders").UpdateByID(ctx, order.ID, bson.M{
		"$set": bson.M{"screenshotUrl": url, "updatedAt": time.Now()},
	})
	if err != nil {
		log.Printf("[%s] [WARN] screenshot url update failed for %s: %v", route, order.ReceiptNumber, err)
		return
	}

	order.ScreenshotURL = url
}

/* =========================
   GET ORDER BY RECEIPT
========================= */

func GetOrderByReceipt(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:receipt"
		defer handlePanic(c, route)

		receipt := strings.TrimSpace(c.Param("receipt"))
		if receipt == "" {
			respondWithError(c, http.StatusBadRequest, route, "receipt number is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"receiptNumber": receipt}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
