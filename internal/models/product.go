package models

// Product reflète la réponse produit de l'API WooCommerce (wc/v3).
// Jamais persisté ici : le catalogue reste la propriété de la boutique WordPress.
type Product struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	Price            string            `json:"price"`
	RegularPrice     string            `json:"regular_price"`
	SalePrice        string            `json:"sale_price"`
	PriceHTML        string            `json:"price_html"`
	StockStatus      string            `json:"stock_status"`
	Images           []ProductImage    `json:"images"`
	Categories       []ProductCategory `json:"categories"`
}

type ProductImage struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type ProductCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
