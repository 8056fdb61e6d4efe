package api

import (
	"net/http" // HTTP status codes

	"contact_manager/internal/service" // Business logic

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateAddressHandler adds an address to a contact of the authenticated user
func CreateAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		var req service.AddressRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(invalidBody())
			return
		}
		res, err := addresses.Create(c.Request.Context(), user, c.Param("contactId"), req)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// GetAddressHandler returns one address of a contact
func GetAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		res, err := addresses.Get(c.Request.Context(), user, c.Param("contactId"), c.Param("addressId"))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// UpdateAddressHandler replaces one address of a contact
func UpdateAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		var req service.AddressRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(invalidBody())
			return
		}
		res, err := addresses.Update(c.Request.Context(), user, c.Param("contactId"), c.Param("addressId"), req)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}

// DeleteAddressHandler deletes one address of a contact
func DeleteAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		if err := addresses.Delete(c.Request.Context(), user, c.Param("contactId"), c.Param("addressId")); err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": "OK"})
	}
}

// ListAddressesHandler returns every address of a contact
func ListAddressesHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c) // Get user from context
		if !ok {
			return
		}
		res, err := addresses.List(c.Request.Context(), user, c.Param("contactId"))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": res})
	}
}
