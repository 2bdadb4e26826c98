package domain

// Product is a storefront catalog entry. The assistant reads products but
// never mutates them; cart and checkout live in the storefront, not here.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Badge       string  `json:"badge,omitempty"`
	CategoryID  int     `json:"categoryId,omitempty"`
	Description string  `json:"description,omitempty"`
	Stock       int     `json:"stock,omitempty"`
}

// Category groups products. Keywords feed the entity extractor.
type Category struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Keywords []string `json:"keywords,omitempty"`
}

// Badge values used by the promotional selection.
const (
	BadgePromotion = "En promotion"
	BadgePopular   = "Populaire"
)
