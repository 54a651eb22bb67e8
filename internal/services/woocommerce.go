package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"hairrent_back_end/internal/database"
	"hairrent_back_end/internal/models"
)

// Passerelle catalogue vers l'API WooCommerce (wc/v3) de la boutique WordPress.
// Le catalogue n'est jamais persisté ici : lecture seule, à la demande.
// En cas d'échec amont on dégrade vers une liste vide plutôt que d'échouer.

const categoryIDCacheTTL = time.Hour

var wooClient = &http.Client{Timeout: 10 * time.Second}

func wordpressURL() string {
	if v := os.Getenv("WORDPRESS_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return "https://hair-rent.co.za"
}

// wooGet appelle un endpoint wc/v3 avec l'authentification consumer key/secret
func wooGet(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/wp-json/wc/v3/%s", wordpressURL(), path)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(os.Getenv("WC_CONSUMER_KEY"), os.Getenv("WC_CONSUMER_SECRET"))

	res, err := wooClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("woocommerce %s: statut %d: %s", path, res.StatusCode, body)
	}

	return json.NewDecoder(res.Body).Decode(out)
}

// GetProducts retourne les produits publiés de la boutique
func GetProducts(ctx context.Context) []models.Product {
	params := url.Values{}
	params.Set("per_page", "20")
	params.Set("status", "publish")

	var products []models.Product
	if err := wooGet(ctx, "products", params, &products); err != nil {
		log.Println("❌ Erreur récupération produits WooCommerce:", err)
		return []models.Product{}
	}
	return products
}

// GetProductBySlug retourne un produit par son slug, nil si introuvable
func GetProductBySlug(ctx context.Context, slug string) *models.Product {
	params := url.Values{}
	params.Set("slug", slug)

	var products []models.Product
	if err := wooGet(ctx, "products", params, &products); err != nil {
		log.Printf("❌ Erreur récupération produit '%s': %v", slug, err)
		return nil
	}
	if len(products) == 0 {
		return nil
	}
	return &products[0]
}

// GetProductsByCategory retourne les produits d'une catégorie par son slug.
// L'id de catégorie est résolu via l'API puis mis en cache Redis (1h).
func GetProductsByCategory(ctx context.Context, slug string) []models.Product {
	categoryID, err := resolveCategoryID(ctx, slug)
	if err != nil {
		log.Printf("❌ Catégorie introuvable '%s': %v", slug, err)
		return []models.Product{}
	}

	params := url.Values{}
	params.Set("category", strconv.Itoa(categoryID))
	params.Set("per_page", "100")

	var products []models.Product
	if err := wooGet(ctx, "products", params, &products); err != nil {
		log.Printf("❌ Erreur récupération produits catégorie '%s': %v", slug, err)
		return []models.Product{}
	}
	return products
}

// GetProductsByIds retourne les produits correspondant aux ids donnés
func GetProductsByIds(ctx context.Context, ids []int) []models.Product {
	if len(ids) == 0 {
		return []models.Product{}
	}

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id)
	}

	params := url.Values{}
	params.Set("include", strings.Join(strs, ","))
	params.Set("status", "publish")
	params.Set("per_page", "100")

	var products []models.Product
	if err := wooGet(ctx, "products", params, &products); err != nil {
		log.Println("❌ Erreur récupération produits par ids:", err)
		return []models.Product{}
	}
	return products
}

func resolveCategoryID(ctx context.Context, slug string) (int, error) {
	cacheKey := "wc:category_id:" + slug

	if database.Redis != nil {
		if val, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil {
			if id, err := strconv.Atoi(val); err == nil {
				return id, nil
			}
		}
	}

	params := url.Values{}
	params.Set("slug", slug)

	var categories []models.ProductCategory
	if err := wooGet(ctx, "products/categories", params, &categories); err != nil {
		return 0, err
	}
	if len(categories) == 0 {
		return 0, fmt.Errorf("aucune catégorie pour le slug '%s'", slug)
	}

	id := categories[0].ID
	if database.Redis != nil {
		database.Redis.Set(ctx, cacheKey, strconv.Itoa(id), categoryIDCacheTTL)
	}
	return id, nil
}
