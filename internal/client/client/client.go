package client

import (
	"context"

	"github.com/dmitrijs2005/affiliate/internal/client/models"
)

// Client is the affiliate API surface used by the application.
type Client interface {
	// Login exchanges credentials for a token and fetches the shop record
	// with it. Nothing is persisted.
	Login(ctx context.Context, email, password string) (*models.Shop, string, error)
	Register(ctx context.Context, req models.ShopCreate) (*models.Shop, error)
	GetShop(ctx context.Context, id int64) (*models.Shop, error)

	GetProduct(ctx context.Context, id int64, bloggerID *int64) (*models.Product, error)
	ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.ProductCreate) (*models.Product, error)
	GetProductAnalytics(ctx context.Context, productID int64) ([]models.Analytics, error)

	CreateOrder(ctx context.Context, req models.OrderCreate) (*models.Order, error)
	ListProductOrders(ctx context.Context, productID int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error

	CreateAffiliateLink(ctx context.Context, req models.AffiliateLinkCreate) (*models.AffiliateLink, error)
	GetAffiliateLink(ctx context.Context, code string) (*models.AffiliateLink, error)

	ListBloggers(ctx context.Context) ([]models.Blogger, error)
	CreateBlogger(ctx context.Context, req models.BloggerCreate) (*models.Blogger, error)
}
