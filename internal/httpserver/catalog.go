package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	productrepo "trendyshop/internal/repository/product"
	"github.com/gin-gonic/gin"
)

func categoriesHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := catalog.Browse(c.Request.Context(), c.Param("path"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func productsByCategoryHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ProductsByPath(c.Request.Context(), c.Param("path"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func productDetailHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.ProductBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// searchHandler reads the filter off the query string. Prices arrive in
// cents; malformed numbers are a 400.
func searchHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := productrepo.SearchFilter{
			Query:        strings.TrimSpace(c.Query("q")),
			Brand:        strings.TrimSpace(c.Query("brand")),
			CategorySlug: strings.TrimSpace(c.Query("category")),
		}
		var err error
		if filter.MinPriceCents, err = queryCents(c, "min_price"); err != nil {
			badRequest(c, "min_price must be a number")
			return
		}
		if filter.MaxPriceCents, err = queryCents(c, "max_price"); err != nil {
			badRequest(c, "max_price must be a number")
			return
		}

		products, err := catalog.Search(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func trendingHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Trending(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func topDealsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.TopDeals(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func queryCents(c *gin.Context, key string) (int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
