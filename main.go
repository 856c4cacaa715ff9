package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopapi/internal/config"
	"shopapi/internal/database"
	"shopapi/internal/handlers"
	"shopapi/internal/middleware"
	"shopapi/internal/notify"
	"shopapi/internal/sequence"
	"shopapi/internal/service"
	"shopapi/internal/store"
)

func main() {
	config.Load()

	if config.AppEnv.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCounterIndexes(db); err != nil {
		log.Printf("counter index warning: %v", err)
	}

	mailer := notify.NewMailer(notify.SMTPConfig{
		Host:     config.AppEnv.SMTPHost,
		Port:     config.AppEnv.SMTPPort,
		User:     config.AppEnv.SMTPUser,
		Password: config.AppEnv.SMTPPassword,
		From:     config.AppEnv.SMTPFrom,
	})

	counters := sequence.NewMongoStore(db)
	accounts := service.NewAccounts(
		store.NewUsers(db),
		counters,
		mailer,
		config.AppEnv.DefaultAdminEmail,
		config.AppEnv.DefaultAdminPassword,
	)
	orders := service.NewOrders(store.NewOrders(db), store.NewUsers(db), counters, mailer)

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := accounts.EnsureDefaultAdmin(bootCtx); err != nil {
		log.Printf("default admin bootstrap warning: %v", err)
	}
	cancel()

	development := config.AppEnv.IsDevelopment()
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register(accounts, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, development))
		auth.POST("/login", handlers.Login(accounts, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, development))
		auth.GET("/me", middleware.Auth(config.AppEnv.JWTSecret), handlers.GetMe(accounts, development))
	}

	api := r.Group("/api/orders")
	api.Use(middleware.Auth(config.AppEnv.JWTSecret))
	{
		api.POST("", handlers.CreateOrder(orders, development))
		api.GET("", handlers.GetOrders(orders, development))
		api.GET("/:id", handlers.GetOrder(orders, development))
		api.PATCH("/:id/cancel", handlers.CancelOrder(orders, development))
		api.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteOrder(orders, development))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	log.Println("Server running on port", config.AppEnv.Port)
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
