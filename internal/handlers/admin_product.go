package handlers

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wearluxe/internal/mailer"
	"wearluxe/internal/models"
	"wearluxe/internal/money"
	"wearluxe/internal/storage"
)

/* =======================
   LIST (ADMIN)
======================= */

// GetAllProducts returns every product, inactive ones included.
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database, uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if !input.NameSet || input.Name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name is required")
			return
		}
		if !input.PriceSet {
			respondWithError(c, http.StatusBadRequest, route, "price is required")
			return
		}
		if !input.CategorySet || !models.ValidCategory(input.Category) {
			respondWithError(c, http.StatusBadRequest, route, "valid category is required")
			return
		}

		now := time.Now()
		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			PriceMinor:  money.ToMinor(input.Price),
			Category:    input.Category,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if input.IsActiveSet {
			product.IsActive = input.IsActive
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if input.Image != nil {
			url, publicID, err := uploadProductImage(ctx, uploader, input.Image)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "image upload failed")
				return
			}
			product.ImageURL = url
			product.ImagePublicID = publicID
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}

		log.Printf("[%s] product %s created", route, product.Name)
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(db *mongo.Database, uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if input.NameSet {
			if input.Name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name must not be empty")
				return
			}
			set["name"] = input.Name
		}
		if input.DescriptionSet {
			set["description"] = input.Description
		}
		if input.PriceSet {
			set["priceMinor"] = money.ToMinor(input.Price)
		}
		if input.CategorySet {
			if !models.ValidCategory(input.Category) {
				respondWithError(c, http.StatusBadRequest, route, "unknown category: "+input.Category)
				return
			}
			set["category"] = input.Category
		}
		if input.IsActiveSet {
			set["isActive"] = input.IsActive
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if input.Image != nil {
			url, publicID, err := uploadProductImage(ctx, uploader, input.Image)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "image upload failed")
				return
			}
			set["imageUrl"] = url
			set["imagePublicId"] = publicID

			if existing.ImagePublicID != "" {
				if err := uploader.Destroy(ctx, existing.ImagePublicID); err != nil {
					log.Printf("[%s] [WARN] old image cleanup failed: %v", route, err)
				}
			}
		}

		if _, err := db.Collection("products").UpdateByID(ctx, productID, bson.M{"$set": set}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var updated models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&updated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(db *mongo.Database, uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if product.ImagePublicID != "" {
			if err := uploader.Destroy(ctx, product.ImagePublicID); err != nil {
				log.Printf("[%s] [WARN] image cleanup failed: %v", route, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

/* =======================
   ANNOUNCE
======================= */

// AnnounceProduct emails a new-product announcement to every active
// subscriber, one at a time. Per-recipient failures are collected and
// returned; they never abort the remaining sends.
func AnnounceProduct(db *mongo.Database, sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products/:id/announce"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("newsletter_subscribers").Find(ctx, bson.M{"isActive": true})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var subscribers []models.NewsletterSubscriber
		if err := cursor.All(ctx, &subscribers); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		recipients := make([]string, 0, len(subscribers))
		for _, subscriber := range subscribers {
			recipients = append(recipients, subscriber.Email)
		}

		result := mailer.SendToAll(sender, recipients, func(to string) mailer.Message {
			return mailer.NewProductAnnouncement(to, product)
		})

		log.Printf("[%s] announced %s: %d ok, %d failed", route, product.Name, result.SuccessCount, result.ErrorCount)
		c.JSON(http.StatusOK, result)
	}
}

/* =======================
   IMAGE UPLOAD
======================= */

func uploadProductImage(ctx context.Context, uploader storage.Uploader, file *multipart.FileHeader) (string, string, error) {
	in, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer in.Close()

	publicID := "products/" + uuid.NewString()
	url, err := uploader.Upload(ctx, in, publicID)
	if err != nil {
		return "", "", err
	}
	return url, publicID, nil
}
