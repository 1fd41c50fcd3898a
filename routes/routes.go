package routes

import (
	"context"
	"net/http"
	"time"

	apperrors "storefront/common/errors"
	"storefront/common/logger"
	commonmw "storefront/common/middleware"
	"storefront/controllers"
	"storefront/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "storefront"
	requestTimeout = 30 * time.Second
)

// Options carries everything the router needs. Metrics and AuthLimiter
// are optional.
type Options struct {
	Logger         *zap.Logger
	Metrics        commonmw.MetricsRecorder
	AuthLimiter    *commonmw.RateLimiter
	AllowedOrigins []string

	Sessions middleware.SessionResolver
	Users    middleware.UserLookup

	Auth     *controllers.AuthController
	Profile  *controllers.UserController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Uploads  *controllers.UploadController
}

// NewRouter builds the HTTP handler for the storefront API.
func NewRouter(opts Options) *gin.Engine {
	controllers.RegisterValidation()

	r := gin.New()
	r.Use(
		logger.RequestID(),
		commonmw.RequestLogger(opts.Logger),
		commonmw.Metrics(opts.Metrics, serviceName),
		apperrors.Recovery(opts.Logger),
		commonmw.SecurityHeaders(),
		cors.New(corsConfig(opts.AllowedOrigins)),
		timeout(requestTimeout),
		apperrors.ErrorMiddleware(opts.Logger),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})

	api := r.Group("/api")
	session := middleware.RequireSession(opts.Sessions)
	admin := api.Group("/admin", session, middleware.AdminOnly(opts.Users))

	// Only credential endpoints are throttled; /me runs on every page load.
	credentials := []gin.HandlerFunc{}
	if opts.AuthLimiter != nil {
		credentials = append(credentials, commonmw.RateLimit(opts.AuthLimiter))
	}
	auth := api.Group("/auth")
	auth.POST("/register", append(credentials, opts.Auth.Register)...)
	auth.POST("/login", append(credentials, opts.Auth.Login)...)
	auth.POST("/logout", session, opts.Auth.Logout)
	auth.GET("/me", session, opts.Auth.Me)

	api.PUT("/users/profile", session, opts.Profile.UpdateProfile)
	admin.GET("/users", opts.Profile.List)

	api.GET("/products", opts.Products.List)
	api.GET("/products/:id", opts.Products.Get)
	api.GET("/products/:id/reviews", opts.Products.ListReviews)
	api.POST("/products/:id/reviews", session, opts.Products.CreateReview)
	api.DELETE("/reviews/:id", session, opts.Products.DeleteReview)
	admin.POST("/products", opts.Products.Create)
	admin.PUT("/products/:id", opts.Products.Update)
	admin.DELETE("/products/:id", opts.Products.Delete)
	admin.POST("/products/uploads", opts.Uploads.PresignProductImage)

	cart := api.Group("/cart", session)
	cart.GET("", opts.Cart.List)
	cart.POST("", opts.Cart.Add)
	cart.DELETE("", opts.Cart.Clear)
	cart.PUT("/:id", opts.Cart.Update)
	cart.DELETE("/:id", opts.Cart.Remove)

	orders := api.Group("/orders", session)
	orders.GET("", opts.Orders.List)
	orders.POST("", opts.Orders.Place)
	orders.GET("/:id", opts.Orders.Get)
	admin.GET("/orders", opts.Orders.ListAll)
	admin.PUT("/orders/:id/status", opts.Orders.UpdateStatus)

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
