package httpserver

import (
	"net/http"

	cartsvc "trendyshop/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	CartCode  string `json:"cart_code"`
}

type updateCartRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

type deleteCartRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// getCartHandler returns the caller's open cart, creating it lazily. Guests
// get the cart code refreshed in the cookie on every fetch so it survives
// another week of browsing.
func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := cartOwner(c, "")
		cart, err := carts.GetOrCreate(c.Request.Context(), owner)
		if err != nil {
			respondError(c, err)
			return
		}
		totals, err := carts.Totals(c.Request.Context(), cart)
		if err != nil {
			respondError(c, err)
			return
		}
		if !owner.IsUser() {
			setCartCodeCookie(c, cart.Code)
		}
		c.JSON(http.StatusOK, gin.H{
			"cart":        cart,
			"total_items": totals.ItemCount,
			"total_price": totals.PriceCents,
		})
	}
}

func addToCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "product_id required")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		owner := cartOwner(c, req.CartCode)
		item, cart, err := carts.AddItem(c.Request.Context(), owner, cartsvc.AddItemInput{
			ProductID: req.ProductID,
			Size:      req.Size,
			Quantity:  req.Quantity,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if !owner.IsUser() {
			setCartCodeCookie(c, cart.Code)
		}
		c.JSON(http.StatusCreated, gin.H{
			"item":      item,
			"cart_code": cart.Code,
		})
	}
}

func updateCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "item_id required")
			return
		}
		item, removed, err := carts.SetQuantity(c.Request.Context(), req.ItemID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		if removed {
			c.JSON(http.StatusOK, gin.H{"removed": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

func deleteCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deleteCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "item_id required")
			return
		}
		if err := carts.RemoveItem(c.Request.Context(), req.ItemID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}

// cartStatusHandler reports guest cart totals without creating a cart.
func cartStatusHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := requestCartCode(c)
		if code == "" {
			badRequest(c, "cart_code required")
			return
		}
		cart, totals, err := carts.Stat(c.Request.Context(), code)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cart_code":   cart.Code,
			"total_items": totals.ItemCount,
			"total_price": totals.PriceCents,
		})
	}
}

// cartCheckHandler reports whether a product is already in the guest cart.
func cartCheckHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := requestCartCode(c)
		productID := c.Query("product_id")
		if code == "" || productID == "" {
			badRequest(c, "cart_code and product_id required")
			return
		}
		in, err := carts.HasProduct(c.Request.Context(), code, productID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product_in_cart": in})
	}
}
