package routes

import (
	"net/http"
	"time"

	"marketplace-client/logger"
	"marketplace-client/middleware"
	"marketplace-client/session"
	"marketplace-client/view"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures the storefront router
type Options struct {
	Store         session.Store
	CORSOrigins   []string
	SecureCookies bool
	// Observer may be nil
	Observer middleware.RequestObserver
}

// NewRouter builds the storefront engine with its middleware and routes
func NewRouter(sf *Storefront, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(middleware.Metrics(opts.Observer))
	r.Use(middleware.SecurityHeaders())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.SetHTMLTemplate(view.Templates())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	RegisterRoutes(r.Group("/", middleware.BrowserSession(opts.Store, opts.SecureCookies)), sf)
	return r
}

func RegisterRoutes(r *gin.RouterGroup, sf *Storefront) {
	// Pages
	r.GET("/", sf.Index)
	r.GET("/signin.html", sf.SignInPage)
	r.GET("/home.html", sf.HomePage)

	// Account
	r.POST("/signin", sf.SignIn())
	r.POST("/signup", sf.SignUp())
	r.POST("/signout", sf.SignOut())

	// Catalog
	r.POST("/products", sf.CreateProduct())
	r.GET("/products/search", sf.SearchProducts())

	// Cart
	r.POST("/cart/add", sf.AddToCart())
	r.GET("/cart", sf.ViewCart())
	r.POST("/cart/checkout", sf.Checkout())
}
