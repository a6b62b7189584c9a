package core

import (
	"context"

	"github.com/electronix/assistant/internal/models"
)

// DbClient defines all persistence operations the handlers and the chat engine
// need. It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetCart(ctx context.Context, userID string) (models.Cart, error)
	UpdateCart(ctx context.Context, userID string, cart models.Cart) error

	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, page, limit int) ([]models.Product, int, error)
	ListProductsByCategory(ctx context.Context, category string, page, limit int) ([]models.Product, int, error)
	FindProducts(ctx context.Context, filter models.ProductFilter, limit int) ([]models.Product, error)
	FindPopular(ctx context.Context, limit int) ([]models.Product, error)
	FindNewArrivals(ctx context.Context, limit int) ([]models.Product, error)
	SetProductAvailability(ctx context.Context, id string, available bool) error

	ListFaqs(ctx context.Context) ([]models.Faq, error)
	CreateFaq(ctx context.Context, faq *models.Faq) error
	UpdateFaq(ctx context.Context, faq *models.Faq) error
	DeleteFaq(ctx context.Context, id string) error

	ListSocialLinks(ctx context.Context) ([]models.SocialLink, error)
	UpsertSocialLink(ctx context.Context, link *models.SocialLink) error
	DeleteSocialLink(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrdersByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int, error)
	FindOrderByID(ctx context.Context, userID, orderID string) (*models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, userID, orderID, status string) error

	AppendExchange(ctx context.Context, exchange *models.ChatExchange) error
	ListRecentExchanges(ctx context.Context, userID string, n int) ([]models.ChatExchange, error)
	ListExchanges(ctx context.Context, userID string) ([]models.ChatExchange, error)
	DeleteExchange(ctx context.Context, userID, id string) error
	DeleteAllExchanges(ctx context.Context, userID string) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage holding
// product images.
type ObjectClient interface {
	UploadFile(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, key string) error
}

// LLMProvider is the generative text collaborator used for fallback replies.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
