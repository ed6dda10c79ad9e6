package handlers

import (
	"net/http"

	"github.com/brokeradda/adda-admin/internal/metrics"
	"github.com/brokeradda/adda-admin/internal/middleware"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/brokeradda/adda-admin/internal/session"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries everything the HTTP surface is built from.
type RouterConfig struct {
	Env         string
	Production  bool
	CORSOrigins []string
	PageSize    int

	Dashboard  *service.Dashboard
	Session    *session.Session
	Toasts     *service.ToastQueue
	Metrics    *metrics.Metrics
	Images     ImageResolver
	ImageProxy *ImageProxyHandler

	// Limiter guards every route; AuthLimiter additionally guards login.
	Limiter     *middleware.RateLimiter
	AuthLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Metrics))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeaders(cfg.Production))
	if cfg.Limiter != nil {
		router.Use(middleware.RateLimit(cfg.Limiter))
	}

	router.GET("/health", Health(cfg.Env))
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.ImageProxy != nil {
		router.GET(ImageProxyPath, cfg.ImageProxy.Serve)
	}

	dash := cfg.Dashboard
	authHandler := NewAuthHandler(dash.Auth, cfg.Production)
	listHandler := NewListHandler(dash, cfg.PageSize, cfg.Images)
	brokerHandler := NewBrokerHandler(dash.Brokers)
	propertyHandler := NewPropertyHandler(dash.Properties, cfg.Images)
	catalogHandler := NewCatalogHandler(dash)
	actionHandler := NewActionHandler(dash)
	viewHandler := NewViewHandler(dash, cfg.Images)
	importHandler := NewImportHandler(dash.Imports)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			login := []gin.HandlerFunc{authHandler.Login}
			if cfg.AuthLimiter != nil {
				login = append([]gin.HandlerFunc{middleware.RateLimit(cfg.AuthLimiter)}, login...)
			}
			auth.POST("/login", login...)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.Status)
		}

		protected := v1.Group("")
		protected.Use(middleware.RequireSession(cfg.Session))
		{
			protected.GET("/brokers", listHandler.Brokers())
			protected.POST("/brokers", brokerHandler.Create)
			protected.GET("/brokers/summary", brokerHandler.Summary)
			protected.GET("/brokers/counters", brokerHandler.Counters)
			protected.POST("/brokers/:id/:action", brokerHandler.Action)

			protected.GET("/leads", listHandler.Leads())

			protected.GET("/properties", listHandler.Properties())
			protected.GET("/properties/:id", propertyHandler.Get)
			protected.POST("/properties/:id/:action", propertyHandler.Decide)

			protected.GET("/regions", listHandler.Regions())
			protected.POST("/regions", catalogHandler.CreateRegion)
			protected.DELETE("/regions/:id", catalogHandler.DeleteRegion)

			protected.GET("/notifications", listHandler.Notifications())
			protected.POST("/notifications", catalogHandler.SendNotification)

			protected.GET("/contacts", listHandler.Contacts())
			protected.DELETE("/contacts/:id", catalogHandler.DeleteContact)

			protected.GET("/actions/:resource", actionHandler.Pending)
			protected.POST("/actions/:resource/confirm", actionHandler.Confirm)
			protected.DELETE("/actions/:resource", actionHandler.Cancel)

			protected.GET("/views/:resource", viewHandler.Get)
			protected.POST("/views/:resource/search", viewHandler.Search)
			protected.PUT("/views/:resource/filters/:key", viewHandler.SetFilter)
			protected.POST("/views/:resource/filters/apply", viewHandler.ApplyFilters)
			protected.POST("/views/:resource/filters/panel", viewHandler.FilterPanel)
			protected.DELETE("/views/:resource/filters", viewHandler.ClearFilters)
			protected.POST("/views/:resource/page", viewHandler.GoToPage)
			protected.POST("/views/:resource/refresh", viewHandler.Refresh)

			protected.GET("/import", importHandler.Tabs)
			protected.POST("/import/:kind", importHandler.Upload)
			protected.DELETE("/import/:kind", importHandler.Reset)

			if cfg.Toasts != nil {
				protected.GET("/toasts", Toasts(cfg.Toasts))
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return router
}
