package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wearluxe/internal/config"
	"wearluxe/internal/database"
	"wearluxe/internal/handlers"
	"wearluxe/internal/mailer"
	"wearluxe/internal/middleware"
	"wearluxe/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureSubscriberIndexes(db); err != nil {
		log.Printf("⚠️ subscriber index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("⚠️ admin index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("⚠️ product index warning: %v", err)
	}

	uploader, err := storage.NewCloudinaryStore(config.AppEnv.CloudinaryURL)
	if err != nil {
		log.Fatal(err)
	}

	sender := mailer.NewSMTPSender(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.SMTPUser,
		config.AppEnv.SMTPPassword,
		config.AppEnv.MailFrom,
	)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(config.AppEnv.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AppEnv.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.POST("/orders", handlers.CreateOrder(db, uploader, sender))
	r.GET("/orders/:receipt", handlers.GetOrderByReceipt(db))
	r.POST("/contact", handlers.CreateContactMessage(db, sender, config.AppEnv.ShopInbox))
	r.POST("/newsletter/subscribe", handlers.Subscribe(db, sender))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/orders", handlers.GetOrders(db))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(db, sender))

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db, uploader))
		admin.PUT("/products/:id", handlers.UpdateProduct(db, uploader))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db, uploader))
		admin.POST("/products/:id/announce", handlers.AnnounceProduct(db, sender))

		admin.GET("/contact-messages", handlers.GetContactMessages(db))
		admin.PATCH("/contact-messages/:id", handlers.UpdateContactMessage(db))

		admin.GET("/analytics", handlers.GetAnalytics(db))
		admin.GET("/mail/test", handlers.TestMailConnection(sender))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
