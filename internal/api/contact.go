package api

import (
	"net/http" // HTTP status codes

	"contact_manager/internal/service"    // Business logic
	"contact_manager/internal/validation" // Lenient paging parser

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateContactHandler creates a contact owned by the authenticated user
func CreateContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		var req service.ContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(invalidBody())
			return
		}
		res, err := contacts.Create(c.Request.Context(), user, req)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// GetContactHandler returns one contact of the authenticated user
func GetContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		res, err := contacts.Get(c.Request.Context(), user, c.Param("contactId"))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// UpdateContactHandler replaces one contact of the authenticated user
func UpdateContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		var req service.ContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(invalidBody())
			return
		}
		res, err := contacts.Update(c.Request.Context(), user, c.Param("contactId"), req)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// DeleteContactHandler deletes one contact of the authenticated user
func DeleteContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		if err := contacts.Delete(c.Request.Context(), user, c.Param("contactId")); err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": "OK"})
	}
}

// SearchContactsHandler lists the authenticated user's contacts, filtered and paginated
func SearchContactsHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		page, size := validation.Paging(c.Query("page"), c.Query("size")) // Invalid values fall back to defaults
		req := service.SearchContactRequest{
			Name:  c.Query("name"),  // Matches first or last name
			Email: c.Query("email"), // Email substring
			Phone: c.Query("phone"), // Phone substring
			Page:  page,             // Current page
			Size:  size,             // Page size
		}
		res, err := contacts.Search(c.Request.Context(), user, req)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, res) // Data plus paging
	}
}
