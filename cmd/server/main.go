package main

import (
	"log"

	"storeadmin-be/internal/category"
	"storeadmin-be/internal/config"
	"storeadmin-be/internal/customer"
	"storeadmin-be/internal/db"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/mailer"
	"storeadmin-be/internal/middleware"
	"storeadmin-be/internal/order"
	"storeadmin-be/internal/product"
	"storeadmin-be/internal/user"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	var mail mailer.Mailer = mailer.NoOp{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg)
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, mail)

	customerRepo := customer.NewRepository(database)
	customerSvc := customer.NewService(customerRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, categoryRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestIDMiddleware())
	router.Use(logger.LoggingMiddleware())
	router.Use(middleware.RateLimit())

	router.Static("/uploads", cfg.UploadDir)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroupAuthed := v1.Group("/auth")
	authGroupAuthed.Use(middleware.RequireAuth())
	user.NewHandler(userSvc, cfg.AppEnv).Register(authGroup, authGroupAuthed)

	customerGroup := v1.Group("/customer")
	customerGroup.Use(middleware.RequireAuth())
	customer.NewHandler(customerSvc).Register(customerGroup)

	categoryGroup := v1.Group("/category")
	categoryGroupAuthed := v1.Group("/category")
	categoryGroupAuthed.Use(middleware.RequireAuth())
	category.NewHandler(categorySvc, cfg.UploadDir).Register(categoryGroup, categoryGroupAuthed)

	productGroup := v1.Group("/product")
	productGroupAuthed := v1.Group("/product")
	productGroupAuthed.Use(middleware.RequireAuth())
	product.NewHandler(productSvc, cfg.UploadDir).Register(productGroup, productGroupAuthed)

	orderGroup := v1.Group("/order")
	orderGroup.Use(middleware.RequireAuth())
	order.NewHandler(orderSvc).Register(orderGroup)

	log.Printf("Server running on http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
