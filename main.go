package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"coffeeshop/internal/config"
	"coffeeshop/internal/database"
	"coffeeshop/internal/handlers"
	"coffeeshop/internal/mailer"
	"coffeeshop/internal/middleware"
	"coffeeshop/internal/payments"
)

func main() {
	config.Load()
	if config.AppEnv.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal("mongo connect failed:", err)
	}
	db := client.Database(config.AppEnv.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureIndexes(db); err != nil {
		log.Printf("⚠️ index warning: %v", err)
	}

	mail := mailer.NewDispatcher(
		mailer.NewResendSender(config.AppEnv.ResendAPIKey, config.AppEnv.MailFrom), 64)
	intents := payments.NewStripeIntents(config.AppEnv.StripeSecretKey)
	roles := database.NewUserRoles(db)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "coffee shop is running")
	})

	r.POST("/jwt", handlers.IssueToken(config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	r.GET("/menus", handlers.GetMenus(db))
	r.GET("/menu/:id", handlers.GetMenuItem(db))
	r.POST("/coffee", handlers.CreateMenuItem(db))
	r.PUT("/coffee/update/:id", handlers.UpdateMenuItem(db))
	r.DELETE("/coffee/:id", handlers.DeleteMenuItem(db))
	r.GET("/my-listings/:email", handlers.GetMyListings(db))

	r.POST("/bookings", handlers.CreateBooking(db, mail))
	r.PUT("/user", handlers.UpsertUser(db, mail))
	r.GET("/user/:email", handlers.GetUser(db))

	r.GET("/admin-stat", handlers.AdminStats(db))
	r.GET("/host-stat", handlers.HostStats(db))
	r.POST("/create-payment-intent", handlers.CreatePaymentIntent(intents))

	authed := r.Group("/")
	authed.Use(middleware.RequireToken(config.AppEnv.JWTSecret))
	{
		authed.GET("/my-bookings/:email", handlers.GetMyBookings(db))
		authed.GET("/manage-bookings/:email", handlers.GetManageBookings(db))
		authed.DELETE("/booking/:id", handlers.DeleteBooking(db))

		admin := authed.Group("/")
		admin.Use(middleware.RequireAdmin(roles))
		{
			admin.GET("/users", handlers.GetUsers(db))
			admin.PATCH("/users/update/:email", handlers.UpdateUser(db))
		}
	}

	server := &http.Server{
		Addr:              ":" + config.AppEnv.Port,
		Handler:           r,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("coffee shop is sitting on port %s", config.AppEnv.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	mail.Close()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
