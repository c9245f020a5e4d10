package main

import (
	"context"
	"net/http"
	"os"

	"campushub/internal/handler"
	"campushub/internal/middleware"
	"campushub/internal/repository/postgres"

	_ "campushub/docs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (customValidator *CustomValidator) Validate(i interface{}) error {
	if err := customValidator.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// @title CampusHub API
// @version 1.0
// @description Campus community platform: events with QR check-in, app showcases, follows and points

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(logger))

	e.Validator = &CustomValidator{validator: validator.New()}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	storage, err := postgres.NewConnection(connString)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer storage.Close()

	if err := storage.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMiddleware := middleware.JWTAuth()
	adminMiddleware := middleware.AdminOnly()

	handler.SetupAuthRoutes(e, storage, authMiddleware)
	handler.SetupUserRoutes(e, storage, authMiddleware)
	handler.SetupEventRoutes(e, storage, authMiddleware)
	handler.SetupCheckinRoutes(e, storage, authMiddleware)
	handler.SetupAppRoutes(e, storage, authMiddleware)
	handler.SetupAdminRoutes(e, storage, authMiddleware, adminMiddleware)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
