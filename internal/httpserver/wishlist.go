package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type wishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func listWishlistHandler(wishlists wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		items, err := wishlists.List(c.Request.Context(), u.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wishlist": items})
	}
}

// addToWishlistHandler is idempotent: re-adding an entry answers 200 instead
// of 201.
func addToWishlistHandler(wishlists wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		var req wishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "product_id required")
			return
		}
		item, created, err := wishlists.Add(c.Request.Context(), u.ID, req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"item": item, "created": created})
	}
}

func removeFromWishlistHandler(wishlists wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		if err := wishlists.Remove(c.Request.Context(), u.ID, c.Param("product_id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}
