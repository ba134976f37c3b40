package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"fruteria/internal/config"
	"fruteria/internal/database"
	"fruteria/internal/events"
	"fruteria/internal/handlers"
	"fruteria/internal/middleware"
	"fruteria/internal/models"
	"fruteria/internal/repositories"
	"fruteria/internal/services"
	"fruteria/pkg/apiclient"
	"fruteria/pkg/logger"
	"fruteria/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	app, cleanup, err := newApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Info().Str("port", cfg.AppPort).Str("store", cfg.StoreDriver).Msg("starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// newApp wires the store, services, handlers and optional broker into a Fiber app.
// cleanup releases the broker connection and must be called on shutdown.
func newApp(cfg *config.Config, log zerolog.Logger) (*fiber.App, func(), error) {
	ctx := context.Background()

	// --- Initialize Repositories ---
	repos, tx, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.SeedDemoData {
		seedProducts(ctx, repos.Products, log)
	}

	// --- Initialize RabbitMQ Client ---
	var (
		publisher events.Publisher
		mqClient  *rabbitmq.Client
	)
	cleanup := func() {}
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.DefaultConfig(cfg.RabbitMQURL), log)
		if err != nil {
			// Movements still commit without a broker; only the notifications are lost.
			log.Warn().Err(err).Msg("RabbitMQ unavailable, movement events disabled")
		} else {
			publisher = events.NewBrokerPublisher(mqClient)
			if err := mqClient.Consume(events.LogHandler(log.With().Str("component", "consumer").Logger())); err != nil {
				log.Error().Err(err).Msg("failed to start RabbitMQ consumer")
			}
			cleanup = func() {
				if err := mqClient.Close(); err != nil {
					log.Error().Err(err).Msg("error closing RabbitMQ client")
				}
			}
		}
	}

	// --- Initialize Services ---
	productService := services.NewProductService(repos.Products, tx, log)
	ledgerService := services.NewLedgerService(repos, tx, publisher, log)
	reportService := services.NewReportService(repos)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{AppName: "fruteria"})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	// --- API Routes ---
	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewMovementHandler(ledgerService).RegisterRoutes(app)
	handlers.NewReportHandler(reportService).RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		broker := "disabled"
		if mqClient != nil {
			broker = "connected"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"store":    cfg.StoreDriver,
			"rabbitmq": broker,
		})
	})

	return app, cleanup, nil
}

// openStore builds the repositories and transaction runner for cfg.StoreDriver.
func openStore(cfg *config.Config) (repositories.Repositories, repositories.TxRunner, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		store := repositories.NewMemoryStore()
		return store.Repositories(), store, nil
	case config.DriverRemote:
		client := apiclient.New(apiclient.Config{BaseURL: cfg.RemoteAPIURL, Timeout: cfg.RemoteTimeout})
		repos, tx := repositories.NewRemoteStore(client)
		return repos, tx, nil
	default:
		db, err := database.Open(cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return repositories.Repositories{}, nil, err
		}
		return repositories.NewGORMRepositories(db), repositories.NewGORMTxRunner(db), nil
	}
}

// seedProducts populates an empty product repository with demo produce.
func seedProducts(ctx context.Context, repo repositories.ProductRepository, log zerolog.Logger) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error checking products before seeding")
		return
	}
	if len(existing) > 0 {
		return
	}

	today := models.DateOf(time.Now())
	products := []models.Product{
		{Name: "Manzana Roja", Category: "Frutas", Unit: "kg", Price: decimal.RequireFromString("35.50"), Stock: decimal.NewFromInt(40), Supplier: "Huerta del Valle", ExpiryDate: today.AddDays(20)},
		{Name: "Plátano", Category: "Frutas", Unit: "kg", Price: decimal.RequireFromString("22.90"), Stock: decimal.NewFromInt(60), Supplier: "Central de Abasto", ExpiryDate: today.AddDays(5)},
		{Name: "Fresa", Category: "Frutas", Unit: "caja", Price: decimal.RequireFromString("60.00"), Stock: decimal.NewFromInt(8), Supplier: "Berries Irapuato", ExpiryDate: today.AddDays(-1)},
		{Name: "Jitomate", Category: "Verduras", Unit: "kg", Price: decimal.RequireFromString("24.00"), Stock: decimal.RequireFromString("18.5"), Supplier: "Central de Abasto", ExpiryDate: today.AddDays(7)},
		{Name: "Aguacate Hass", Category: "Frutas", Unit: "kg", Price: decimal.RequireFromString("55.00"), Stock: decimal.NewFromInt(25), Supplier: "Michoacán Fresh", ExpiryDate: today.AddDays(12)},
	}

	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			log.Error().Err(err).Str("product", products[i].Name).Msg("error seeding product")
		} else {
			log.Info().Str("product", products[i].Name).Uint("id", products[i].ID).Msg("seeded product")
		}
	}
}
