package api

import (
	"net/http" // HTTP status codes

	"contact_manager/internal/apperror"   // Typed errors
	"contact_manager/internal/domain"     // Importing domain models
	"contact_manager/internal/middleware" // Current user lookup
	"contact_manager/internal/service"    // Business logic

	"github.com/gin-gonic/gin" // Gin web framework
)

// invalidBody is reported when a request body is not valid JSON for its type
func invalidBody() error {
	return apperror.Validation("Invalid request body")
}

// currentUser fetches the authenticated user or records an Unauthorized error
func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(apperror.Unauthorized()) // Should not happen behind the auth middleware
		return nil, false
	}
	return user, true
}

// RegisterHandler creates a new user account
func RegisterHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(invalidBody()) // If binding fails, report bad request
			return
		}
		res, err := users.Register(c.Request.Context(), req) // Validate and store the user
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res}) // Password is never part of the response
	}
}

// LoginHandler authenticates a user and returns a new session token
func LoginHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(invalidBody())
			return
		}
		res, err := users.Login(c.Request.Context(), req) // Check credentials and issue a token
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res}) // Return the token in the response
	}
}

// GetCurrentUserHandler returns the authenticated user's profile
func GetCurrentUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		res, err := users.Get(c.Request.Context(), user)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// UpdateCurrentUserHandler changes the authenticated user's name and/or password
func UpdateCurrentUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		var req service.UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(invalidBody())
			return
		}
		res, err := users.Update(c.Request.Context(), user, req)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// DeleteCurrentUserHandler deletes the authenticated user with all their contacts
func DeleteCurrentUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		if err := users.Delete(c.Request.Context(), user); err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": "OK"})
	}
}

// LogoutHandler clears the authenticated user's session token
func LogoutHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		if err := users.Logout(c.Request.Context(), user); err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": "OK"})
	}
}
