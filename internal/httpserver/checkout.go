package httpserver

import (
	"net/http"

	checkoutsvc "trendyshop/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

// createOrderHandler opens a gateway order for the user's cart. The response
// carries everything the payment widget needs.
func createOrderHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		init, err := checkout.Initiate(c.Request.Context(), u.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, init)
	}
}

// verifyPaymentHandler closes the loop: signature check, then the cart
// becomes an order.
func verifyPaymentHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		var req checkoutsvc.VerifyInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		order, err := checkout.Verify(c.Request.Context(), u.ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}
