package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/config"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/handlers"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/tracking"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/eventlog"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/rabbitmq"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := openDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.OperatingHours{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Delivery{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	// --- Redis (token denylist) ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, logout revocation degraded: %v", cfg.Redis.Addr, err)
	}
	cancelPing()
	defer rdb.Close()

	// --- Initialize RabbitMQ Client ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	// --- Kafka audit log (optional) ---
	var audit *eventlog.Logger
	if cfg.Kafka.Enabled {
		audit, err = eventlog.NewLogger(eventlog.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Kafka audit logger: %v", err)
		}
		defer audit.Close()
	}

	// --- Tracking hub ---
	hub := tracking.NewHub()

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	restaurantRepo := repositories.NewGORMRestaurantRepository(db)
	menuRepo := repositories.NewGORMMenuRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	deliveryRepo := repositories.NewGORMDeliveryRepository(db)
	tokenStore := repositories.NewRedisTokenStore(rdb)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, tokenStore, cfg.JWT.Secret)
	userService := services.NewUserService(userRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	menuService := services.NewMenuService(menuRepo, restaurantRepo)
	cartService := services.NewCartService(cartRepo, menuRepo, restaurantRepo, orderRepo, mqClient, audit, cfg.Checkout.DeliveryFee)
	orderService := services.NewOrderService(orderRepo, deliveryRepo, mqClient, audit, hub)
	deliveryService := services.NewDeliveryService(deliveryRepo, orderRepo, userRepo, restaurantRepo, mqClient, audit, hub)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, orderService)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, restaurantService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService, userService)
	trackingHandler := handlers.NewTrackingHandler(hub, orderService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	restaurantHandler.RegisterPublicRoutes(apiV1)
	menuHandler.RegisterPublicRoutes(apiV1)
	trackingHandler.RegisterRoutes(apiV1)

	// Authenticated routes
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	ownerOnly := middleware.RequireRole(models.RoleRestaurantOwner)
	driverOnly := middleware.RequireRole(models.RoleDriver)

	authHandler.RegisterProtectedRoutes(protected)
	userHandler.RegisterRoutes(protected, adminOnly)
	restaurantHandler.RegisterRoutes(protected, ownerOnly, adminOnly)
	menuHandler.RegisterRoutes(protected, ownerOnly)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected, driverOnly, adminOnly)
	deliveryHandler.RegisterRoutes(protected, driverOnly)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The notifier consumer drains order events; a real deployment would
	// send push notifications or emails from here.
	go func() {
		log.Println("Starting order event consumer...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start order event consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Server.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects using the configured driver. SQLite keeps local
// development dependency-free; production runs on Postgres.
func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	}
}
