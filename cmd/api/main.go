package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-catalog-api/internal/config"
	"go-catalog-api/internal/handler"
	"go-catalog-api/internal/middleware"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/service"
	"go-catalog-api/pkg/database"
	applogger "go-catalog-api/pkg/logger"
	"go-catalog-api/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env + Config. Running without a .env file is fine in containers.
	_ = godotenv.Load()
	cfg := config.Load()

	log := applogger.NewWithDefaults(cfg.Server.Env)
	defer log.Sync()

	// 2. Setup Database
	db := database.ConnectDB(cfg)
	if err := db.AutoMigrate(&model.Category{}, &model.Product{}, &model.User{}); err != nil {
		log.Fatal("auto-migration failed", zap.Error(err))
	}
	log.Info("database connection established")

	// 3. Upload directory
	saver, err := upload.NewSaver(cfg.Upload.Dir)
	if err != nil {
		log.Fatal("failed to prepare upload directory", zap.Error(err), zap.String("dir", cfg.Upload.Dir))
	}

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWT.Secret))

	productHandler := handler.NewProductHandler(productService, saver)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	userHandler := handler.NewUserHandler(authService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Catalog API v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // Permissive CORS

	// Auth gate: the public surface is the route table, not registration order
	app.Use(middleware.AuthGate([]byte(cfg.JWT.Secret), middleware.PublicRoutes(cfg.API.Prefix)))

	// Uploaded images are served read-only from the upload directory
	app.Static(upload.PublicPath, cfg.Upload.Dir)

	// 6. Routes
	handler.RegisterRoutes(app, cfg.API.Prefix, productHandler, categoryHandler, userHandler)

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("prefix", cfg.API.Prefix))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
