package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bahzadkaka/mv-marketplace/api/routes"
	"github.com/bahzadkaka/mv-marketplace/internal/address"
	"github.com/bahzadkaka/mv-marketplace/internal/auth"
	"github.com/bahzadkaka/mv-marketplace/internal/backup"
	"github.com/bahzadkaka/mv-marketplace/internal/banners"
	"github.com/bahzadkaka/mv-marketplace/internal/catalog"
	"github.com/bahzadkaka/mv-marketplace/internal/checkout"
	"github.com/bahzadkaka/mv-marketplace/internal/invoices"
	"github.com/bahzadkaka/mv-marketplace/internal/media"
	"github.com/bahzadkaka/mv-marketplace/internal/orders"
	"github.com/bahzadkaka/mv-marketplace/internal/users"
	"github.com/bahzadkaka/mv-marketplace/pkg/config"
	"github.com/bahzadkaka/mv-marketplace/pkg/db"
	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
	pkgredis "github.com/bahzadkaka/mv-marketplace/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.DB.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(models.All()...); err != nil {
			logg.Error(context.Background(), "failed to run schema migration", err)
			os.Exit(1)
		}
	}

	var idemStore pkgredis.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		idemStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency replay disabled")
	}

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	authService, err := auth.NewService(usersRepo, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(dbClient, usersRepo, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	addressService, err := address.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	bannersService, err := banners.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create banners service", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(dbClient, catalogRepo, usersRepo, addressService, ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	invoicesService, err := invoices.NewService(ordersRepo, cfg.Invoice.Title)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoices service", err)
		os.Exit(1)
	}

	backupService, err := backup.NewService(dbClient.DB(), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create backup service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, idemStore, routes.Services{
			Auth:     authService,
			Users:    usersService,
			Address:  addressService,
			Catalog:  catalogService,
			Banners:  bannersService,
			Media:    mediaService,
			Checkout: checkoutService,
			Orders:   ordersService,
			Invoices: invoicesService,
			Backup:   backupService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
