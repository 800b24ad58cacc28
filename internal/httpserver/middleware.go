package httpserver

import (
	"net/http"
	"strings"

	"trendyshop/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	userCtxKey = "authUser"

	// cartCodeCookie carries the guest cart identity across visits.
	cartCodeCookie = "cart_code"
	cartCodeMaxAge = 7 * 24 * 60 * 60
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// optionalAuthMiddleware attaches the user when a valid token is presented
// and lets anonymous requests through untouched.
func optionalAuthMiddleware(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := bearerToken(c); tok != "" {
			if u, err := users.LookupByToken(c.Request.Context(), tok); err == nil {
				c.Set(userCtxKey, u)
			}
		}
		c.Next()
	}
}

// requireAuthMiddleware rejects requests without a valid token.
func requireAuthMiddleware(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(userCtxKey, u)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

// requestCartCode reads the guest code from the query string first, then the
// cookie, so clients that store the code themselves keep working.
func requestCartCode(c *gin.Context) string {
	if code := strings.TrimSpace(c.Query("cart_code")); code != "" {
		return code
	}
	code, err := c.Cookie(cartCodeCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(code)
}

// cartOwner resolves the request's cart identity: the authenticated user when
// present, otherwise the guest code carried by the request. bodyCode, when
// non-blank, wins over query and cookie.
func cartOwner(c *gin.Context, bodyCode string) domain.CartOwner {
	if u, ok := currentUser(c); ok {
		return domain.OwnerUser(u.ID)
	}
	code := strings.TrimSpace(bodyCode)
	if code == "" {
		code = requestCartCode(c)
	}
	return domain.OwnerGuest(code)
}

func setCartCodeCookie(c *gin.Context, code string) {
	maxAge := cartCodeMaxAge
	if code == "" {
		maxAge = -1
	}
	c.SetCookie(cartCodeCookie, code, maxAge, "/", "", false, true)
}
