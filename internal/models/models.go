package models

import (
	"time"
)

// User represents a registered shopper or admin.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Cart maps product IDs to quantities. It is replaced wholesale on every
// update; the storefront client owns the merge logic.
type Cart map[string]int

// PriceTier is one size/variant price point of a product.
type PriceTier struct {
	Label    string `db:"label" json:"label"`
	Price    int    `db:"price" json:"price"`
	OldPrice int    `db:"old_price" json:"old_price"`
}

// Product is a catalog entry.
type Product struct {
	ID          string      `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	Images      []string    `db:"images" json:"images"`
	Category    string      `db:"category" json:"category"`
	Tiers       []PriceTier `db:"tiers" json:"tiers"`
	Colors      []string    `db:"colors" json:"colors"`
	Available   bool        `db:"available" json:"available"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// MinPrice returns the cheapest tier price, or 0 for a product with no tiers.
func (p Product) MinPrice() int {
	min := 0
	for i, t := range p.Tiers {
		if i == 0 || t.Price < min {
			min = t.Price
		}
	}
	return min
}

// Order is a placed order. OrderID is the customer-facing "ORD..." token.
type Order struct {
	OrderID   string    `db:"order_id" json:"order_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Items     []string  `db:"items" json:"items"`
	Total     int       `db:"total" json:"total"`
	Status    string    `db:"status" json:"status"`
	PlacedAt  time.Time `db:"placed_at" json:"placed_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	PayMethod string    `db:"pay_method" json:"pay_method"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	Recipient string    `db:"recipient" json:"recipient"`
}

// Faq is one question/answer pair owned by the FAQ store.
type Faq struct {
	ID       string `db:"id" json:"id"`
	Question string `db:"question" json:"question"`
	Answer   string `db:"answer" json:"answer"`
}

// SocialLink is a storefront social media link.
type SocialLink struct {
	ID       string `db:"id" json:"id"`
	Platform string `db:"platform" json:"platform"`
	URL      string `db:"url" json:"url"`
	Icon     string `db:"icon" json:"icon"`
}

// ChatExchange is one persisted chat turn (user message + bot reply).
type ChatExchange struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Message   string    `db:"message" json:"message"`
	Reply     string    `db:"reply" json:"reply"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// PriceRange is a price constraint extracted from free text. Either bound may
// be absent; when both are present the extractor does not guarantee Min <= Max,
// so consumers must treat an inverted range as matching nothing.
type PriceRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// ProductFilter is the structured catalog query built from extracted slots.
// It is built fresh per chat turn and has no identity beyond the request.
type ProductFilter struct {
	AvailableOnly bool        `json:"available_only"`
	Categories    []string    `json:"categories,omitempty"`
	Terms         []string    `json:"terms,omitempty"`
	Price         *PriceRange `json:"price,omitempty"`
}
