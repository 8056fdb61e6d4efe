package api

import (
	"net/http" // HTTP status codes

	"contact_manager/internal/config"     // Custom package for configuration
	"contact_manager/internal/middleware" // Custom package for middleware
	"contact_manager/internal/service"    // Business logic

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires services, middleware and routes. rdb may be nil to run without the token cache.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	users := service.NewUserService(db, rdb, cfg.TokenSecret, cfg.CacheTTL)
	contacts := service.NewContactService(db)
	addresses := service.NewAddressService(db)

	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.CORSOrigins), middleware.ErrorHandler())

	r.GET("/healthz", HealthHandler(db)) // Liveness probe

	// User routes
	r.POST("/api/users", RegisterHandler(users))    // Registration endpoint
	r.POST("/api/users/login", LoginHandler(users)) // Login endpoint

	// Everything below requires a session token
	authed := r.Group("/api")
	authed.Use(middleware.TokenAuthMiddleware(users))
	authed.GET("/users/current", GetCurrentUserHandler(users))       // Current user profile
	authed.PATCH("/users/current", UpdateCurrentUserHandler(users))  // Update profile
	authed.DELETE("/users/current", DeleteCurrentUserHandler(users)) // Delete account
	authed.DELETE("/users/logout", LogoutHandler(users))             // Logout

	// Contact routes
	authed.POST("/contacts", CreateContactHandler(contacts))
	authed.GET("/contacts", SearchContactsHandler(contacts))
	authed.GET("/contacts/:contactId", GetContactHandler(contacts))
	authed.PUT("/contacts/:contactId", UpdateContactHandler(contacts))
	authed.DELETE("/contacts/:contactId", DeleteContactHandler(contacts))

	// Address routes, nested under a contact
	authed.POST("/contacts/:contactId/addresses", CreateAddressHandler(addresses))
	authed.GET("/contacts/:contactId/addresses", ListAddressesHandler(addresses))
	authed.GET("/contacts/:contactId/addresses/:addressId", GetAddressHandler(addresses))
	authed.PUT("/contacts/:contactId/addresses/:addressId", UpdateAddressHandler(addresses))
	authed.DELETE("/contacts/:contactId/addresses/:addressId", DeleteAddressHandler(addresses))

	return r
}

// HealthHandler reports whether the database is reachable
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"errors": "Database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": "OK"})
	}
}
