package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hairrent_back_end/internal/database"
	"hairrent_back_end/internal/models"
	"hairrent_back_end/internal/services"
)

// Catalogue : simple proxy en lecture vers WooCommerce, avec cache Redis
// court. L'indisponibilité de l'amont donne une liste vide, jamais une 500.

const productCacheTTL = 5 * time.Minute

// GetProducts retourne les produits publiés (ou un sous-ensemble via ?include=1,2,3)
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	// Rafraîchissement panier côté client : pas de cache pour les lookups ciblés
	if include := c.Query("include"); include != "" {
		var ids []int
		for _, s := range strings.Split(include, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				ids = append(ids, id)
			}
		}
		c.JSON(http.StatusOK, services.GetProductsByIds(ctx, ids))
		return
	}

	if products, ok := cachedProducts(ctx, "products:all"); ok {
		c.JSON(http.StatusOK, products)
		return
	}

	products := services.GetProducts(ctx)
	cacheProducts(ctx, "products:all", products)
	services.IndexProducts(products)

	c.JSON(http.StatusOK, products)
}

// GetProductBySlug retourne un produit par son slug
func GetProductBySlug(c *gin.Context) {
	product := services.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductsByCategory retourne les produits d'une catégorie par son slug
func GetProductsByCategory(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")
	cacheKey := "products:category:" + slug

	if products, ok := cachedProducts(ctx, cacheKey); ok {
		c.JSON(http.StatusOK, products)
		return
	}

	products := services.GetProductsByCategory(ctx, slug)
	cacheProducts(ctx, cacheKey, products)
	services.IndexProducts(products)

	c.JSON(http.StatusOK, products)
}

// SearchProducts recherche dans le catalogue : Elasticsearch d'abord,
// filtre en mémoire sur le catalogue complet sinon
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'q' parameter"})
		return
	}

	if results, err := services.SearchProductsES(query); err == nil {
		c.JSON(http.StatusOK, results)
		return
	}

	// Fallback : scan du catalogue et filtre en mémoire
	ctx := c.Request.Context()
	products, ok := cachedProducts(ctx, "products:all")
	if !ok {
		products = services.GetProducts(ctx)
		cacheProducts(ctx, "products:all", products)
	}

	matches := []models.Product{}
	needle := strings.ToLower(query)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.ShortDescription), needle) {
			matches = append(matches, p)
		}
	}

	c.JSON(http.StatusOK, matches)
}

func cachedProducts(ctx context.Context, key string) ([]models.Product, bool) {
	if database.Redis == nil {
		return nil, false
	}
	val, err := database.Redis.Get(ctx, key).Result()
	if err != nil || val == "" {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false
	}
	return products, true
}

func cacheProducts(ctx context.Context, key string, products []models.Product) {
	if database.Redis == nil || len(products) == 0 {
		return
	}
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, key, data, productCacheTTL)
	}
}
