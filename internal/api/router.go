package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockroom/inventory-api/internal/api/handler"
	"github.com/stockroom/inventory-api/internal/api/middleware"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Construction happens in
// main; the router only wires handlers to routes.
type Deps struct {
	AuthService    ports.AuthService
	ProductService ports.ProductService
	Mailer         ports.Mailer
	DB             *mongo.Database
	JWTSecret      string
	SupportEmail   string
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	productHandler := handler.NewProductHandler(deps.ProductService)
	contactHandler := handler.NewContactHandler(deps.AuthService, deps.Mailer, deps.SupportEmail)
	authRequired := middleware.Auth(deps.JWTSecret)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/logout", authHandler.Logout)
	users.GET("/loggedin", authHandler.LoggedIn)
	users.POST("/forgotpassword", authHandler.ForgotPassword)
	users.PUT("/resetpassword/:resetToken", authHandler.ResetPassword)
	users.GET("/getuser", authHandler.GetUser, authRequired)
	users.PATCH("/updateuser", authHandler.UpdateUser, authRequired)
	users.PATCH("/changepassword", authHandler.ChangePassword, authRequired)

	// --- Product routes ---
	products := e.Group("/api/products", authRequired)
	products.POST("", productHandler.Create)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.PATCH("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	// --- Contact form ---
	e.POST("/api/contactus", contactHandler.Send, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
