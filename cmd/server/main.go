package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/config"
	"github.com/mytheresa/go-inventory/app/database"
	"github.com/mytheresa/go-inventory/app/log"
	"github.com/mytheresa/go-inventory/app/products"
	"github.com/mytheresa/go-inventory/app/server"
	"github.com/mytheresa/go-inventory/app/suppliers"
	"github.com/mytheresa/go-inventory/app/web"
	"github.com/mytheresa/go-inventory/models"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running inventory server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		HTTP      config.HTTP
		Store     config.Store
		Bootstrap config.Bootstrap
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	db, err := database.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("error opening store: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("error closing store", slog.Any("error", err))
		}
	}()

	if err := models.Migrate(ctx, db); err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}

	if cfg.Bootstrap.SeedDemoData {
		res, err := models.Seed(ctx, db)
		if err != nil {
			return fmt.Errorf("error seeding store: %w", err)
		}
		if res.Skipped {
			logger.InfoContext(ctx, "store already populated, seeding skipped")
		} else {
			logger.InfoContext(ctx, "demo data seeded",
				slog.Int("categories", len(res.Categories)),
				slog.Int("suppliers", len(res.Suppliers)),
				slog.Int("products", len(res.Products)))
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error getting database instance: %w", err)
	}

	pages, err := web.NewPages()
	if err != nil {
		return fmt.Errorf("error parsing templates: %w", err)
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	suppliersRepo := models.NewSuppliersRepository(db)

	svc := server.New(cfg.HTTP, logger, sqlDB, server.Handlers{
		Products:   products.NewProductHandler(productsRepo, categoriesRepo, suppliersRepo, pages, logger),
		Categories: categories.NewCategoryHandler(categoriesRepo, pages, logger),
		Suppliers:  suppliers.NewSupplierHandler(suppliersRepo, pages, logger),
	})

	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-ctx.Done()

	logger.Info("http service is shutting down")
	// ctx is already cancelled here.
	if err := cleanup(context.Background()); err != nil {
		logger.Error("error shutting down http service", slog.Any("error", err))
	}
	logger.Info("http service is stopped")

	return nil
}
