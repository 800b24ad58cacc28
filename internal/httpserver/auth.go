package httpserver

import (
	"net/http"

	usersvc "trendyshop/internal/service/user"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	CartCode string `json:"cart_code"`
}

func registerHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req usersvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		u, err := users.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": u})
	}
}

// loginHandler authenticates and hands back the token pair. A guest cart code
// riding along in the body or cookie is merged into the user's cart; the
// cookie is cleared afterwards so the stale code stops circulating.
func loginHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password required")
			return
		}
		guestCode := req.CartCode
		if guestCode == "" {
			guestCode = requestCartCode(c)
		}
		u, access, refresh, err := users.Login(c.Request.Context(), req.Email, req.Password, guestCode)
		if err != nil {
			respondError(c, err)
			return
		}
		if guestCode != "" {
			setCartCodeCookie(c, "")
		}
		c.JSON(http.StatusOK, gin.H{
			"user":       u,
			"access":     access,
			"refresh":    refresh,
			"expires_in": users.AccessTTLSeconds(),
		})
	}
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// refreshTokenHandler rotates a refresh token into a new token pair.
func refreshTokenHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "refresh token required")
			return
		}
		u, access, refresh, err := users.Refresh(c.Request.Context(), req.Refresh)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":       u,
			"access":     access,
			"refresh":    refresh,
			"expires_in": users.AccessTTLSeconds(),
		})
	}
}

func profileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}

func listAddressesHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		addrs, err := users.ListAddresses(c.Request.Context(), u.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addrs})
	}
}

func addAddressHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		var req usersvc.AddressInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		addr, err := users.AddAddress(c.Request.Context(), u.ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"address": addr})
	}
}

func deleteAddressHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _ := currentUser(c)
		if err := users.DeleteAddress(c.Request.Context(), u.ID, c.Param("address_id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
