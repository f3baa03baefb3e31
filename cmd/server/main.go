package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ecosayahat/backend/docs"
	"github.com/ecosayahat/backend/internal/config"
	"github.com/ecosayahat/backend/internal/database"
	"github.com/ecosayahat/backend/internal/handlers"
	mW "github.com/ecosayahat/backend/internal/middleware"
	"github.com/ecosayahat/backend/internal/models"
	"github.com/ecosayahat/backend/internal/services"
)

// @title EcoSayahat Backend API
// @version 1.0
// @description API for the EcoSayahat eco-tourism platform
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env
	viper.ReadInConfig()        // read .env file

	viper.SetEnvPrefix("")

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "EcoSayahat Backend API"
	docs.SwaggerInfo.Description = "API for the EcoSayahat eco-tourism platform"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize services
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	verifyCfg := config.LoadVerificationConfig()
	openaiKey := viper.GetString("openai.api_key")

	ledgerService := services.NewEcocoinLedgerService(db, redisClient)
	authService := services.NewAuthService(db, redisClient, ledgerService)
	taskService := services.NewTaskService(db)
	classifier := services.NewOpenAIClassifier(openaiKey, verifyCfg.Model)
	verificationService := services.NewVerificationService(db, taskService, ledgerService, classifier)
	taskHandler := handlers.NewTaskHandler(taskService, verificationService)
	catalogService := services.NewCatalogService(db)
	reviewService := services.NewReviewService(db)
	taxiService := services.NewTaxiService(db)
	bookingService := services.NewBookingService(db, ledgerService)
	assistantService := services.NewAssistantService(openaiKey, verifyCfg.Model, redisClient)
	voiceService := services.NewVoiceAssistantService(assistantService)
	defer voiceService.Close()

	// Start the verification worker pool
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	verificationService.Start(workerCtx)

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Static file server for region and attraction images
	r.Handle("/static/images/*", http.StripPrefix("/static/images/",
		mW.StaticFileServer("./static/images")))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/register", authService.Register)
		r.Post("/auth/login", authService.Login)
		r.Post("/auth/logout", authService.Logout)

		r.Get("/regions", catalogService.ListRegions)
		r.Get("/regions/{regionID}/attractions", catalogService.ListAttractions)
		r.Get("/attractions/{attractionID}", catalogService.GetAttraction)
		r.Get("/attractions/{attractionID}/reviews", reviewService.ListApproved)
		r.Get("/hotels/{regionID}", catalogService.ListHotels)
		r.Get("/charging-stations", catalogService.ListChargingStations)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/ecocoins/leaderboard", ledgerService.GetLeaderboard)
		r.Post("/contact/send", catalogService.SendContact)
		r.Get("/db/recreate", catalogService.RecreateData)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/auth/me", authService.Me)

			r.Post("/tasks/submit", taskHandler.SubmitTask)
			r.Get("/tasks/submissions", taskHandler.ListMySubmissions)

			r.Get("/ecocoins/balance", ledgerService.GetBalance)
			r.Get("/ecocoins/transactions", ledgerService.GetTransactions)

			r.Post("/attractions/{attractionID}/reviews", reviewService.Create)

			r.Post("/hotels/book", bookingService.BookHotel)
			r.Get("/hotels/bookings", bookingService.ListMyBookings)

			r.Post("/taxi/order", taxiService.CreateOrder)
			r.Get("/taxi/orders", taxiService.ListOrders)
			r.Post("/taxi/accept/{orderID}", taxiService.AcceptOrder)

			r.Post("/ai-assistant/chat", assistantService.Chat)
			r.Post("/ai-assistant/voice", voiceService.VoiceQuery)

			// Admin endpoints
			r.Group(func(r chi.Router) {
				r.Use(mW.RequireRole(models.RoleAdmin))

				r.Get("/admin/reviews", reviewService.ListAll)
				r.Post("/admin/reviews/{reviewID}/approve", reviewService.Approve)
				r.Post("/admin/reviews/{reviewID}/reject", reviewService.Reject)
				r.Get("/admin/stats", reviewService.Stats)
			})
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Drain in-flight verifications before exit
	verificationService.Stop()
	cancelWorkers()

	log.Println("Server stopped")
}
