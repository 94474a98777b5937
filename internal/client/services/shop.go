package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/affiliate/internal/client/client"
	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/common"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoggedIn is returned by flows that need the current shop.
var ErrNotLoggedIn = errors.New("not logged in")

// dashboardLimit is the page size of the product list.
const dashboardLimit = 100

// CurrentShop exposes the logged-in shop.
type CurrentShop interface {
	Shop() *models.Shop
}

// Pusher adds a view to the navigation history.
type Pusher interface {
	Push(path string)
}

// ProductDetails is everything the product page shows.
type ProductDetails struct {
	Product   *models.Product
	Orders    []models.Order
	Analytics []models.Analytics
}

// BloggersPage lists bloggers together with the products a link can target.
type BloggersPage struct {
	Bloggers []models.Blogger
	Products []models.Product
}

// ShopService implements the shop-side and public flows on top of the API client.
type ShopService struct {
	client        client.Client
	session       CurrentShop
	nav           Pusher
	publicBaseURL string
}

// NewShopService wires the service. publicBaseURL is the address affiliate
// links are shared under.
func NewShopService(c client.Client, session CurrentShop, nav Pusher, publicBaseURL string) *ShopService {
	return &ShopService{
		client:        c,
		session:       session,
		nav:           nav,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *ShopService) currentShopID() (int64, error) {
	if s.session == nil {
		return 0, ErrNotLoggedIn
	}
	shop := s.session.Shop()
	if shop == nil {
		return 0, ErrNotLoggedIn
	}
	return shop.ID, nil
}

// Dashboard lists the shop's products.
func (s *ShopService) Dashboard(ctx context.Context) ([]models.Product, error) {
	return s.client.ListProducts(ctx, 0, dashboardLimit)
}

// CreateProduct adds a product to the current shop.
func (s *ShopService) CreateProduct(ctx context.Context, name, description string, price float64) (*models.Product, error) {
	shopID, err := s.currentShopID()
	if err != nil {
		return nil, err
	}
	return s.client.CreateProduct(ctx, models.ProductCreate{
		Name:        name,
		Description: description,
		Price:       price,
		ShopID:      shopID,
	})
}

// ProductDetails loads the product, its orders and its analytics together.
// If any of them fails the whole result is discarded.
func (s *ShopService) ProductDetails(ctx context.Context, productID int64) (*ProductDetails, error) {
	var d ProductDetails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.client.GetProduct(gctx, productID, nil)
		if err != nil {
			return fmt.Errorf("product %d: %w", productID, err)
		}
		d.Product = p
		return nil
	})
	g.Go(func() error {
		o, err := s.client.ListProductOrders(gctx, productID)
		if err != nil {
			return fmt.Errorf("orders of product %d: %w", productID, err)
		}
		d.Orders = o
		return nil
	})
	g.Go(func() error {
		a, err := s.client.GetProductAnalytics(gctx, productID)
		if err != nil {
			return fmt.Errorf("analytics of product %d: %w", productID, err)
		}
		d.Analytics = a
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateOrderStatus changes an order's status and reloads the product page.
func (s *ShopService) UpdateOrderStatus(ctx context.Context, productID, orderID int64, status models.OrderStatus) (*ProductDetails, error) {
	if err := s.client.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return s.ProductDetails(ctx, productID)
}

// Bloggers loads bloggers and products together, all or nothing.
func (s *ShopService) Bloggers(ctx context.Context) (*BloggersPage, error) {
	var page BloggersPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b, err := s.client.ListBloggers(gctx)
		if err != nil {
			return fmt.Errorf("bloggers: %w", err)
		}
		page.Bloggers = b
		return nil
	})
	g.Go(func() error {
		p, err := s.client.ListProducts(gctx, 0, dashboardLimit)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		page.Products = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *ShopService) CreateBlogger(ctx context.Context, req models.BloggerCreate) (*models.Blogger, error) {
	return s.client.CreateBlogger(ctx, req)
}

// CreateAffiliateLink issues a link for the product/blogger pair and
// returns it with its shareable URL.
func (s *ShopService) CreateAffiliateLink(ctx context.Context, productID, bloggerID int64) (*models.AffiliateLink, string, error) {
	l, err := s.client.CreateAffiliateLink(ctx, models.AffiliateLinkCreate{ProductID: productID, BloggerID: bloggerID})
	if err != nil {
		return nil, "", err
	}
	return l, s.ShareURL(l.Code), nil
}

// ShareURL is the public address of the landing page for code.
func (s *ShopService) ShareURL(code string) string {
	return s.publicBaseURL + "/#/products/" + code
}

// ResolveAffiliateLink looks up a link code.
func (s *ShopService) ResolveAffiliateLink(ctx context.Context, code string) (*models.AffiliateLink, error) {
	return s.client.GetAffiliateLink(ctx, code)
}

// Landing loads the public product page. With a blogger the server counts
// the visit.
func (s *ShopService) Landing(ctx context.Context, productID int64, bloggerID *int64) (*models.Product, error) {
	return s.client.GetProduct(ctx, productID, bloggerID)
}

// PlaceOrder orders quantity items of product on behalf of a visitor who
// arrived through bloggerID's link. The price is the product's.
func (s *ShopService) PlaceOrder(ctx context.Context, product *models.Product, bloggerID *int64, phone string, quantity int) (*models.Order, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: no product loaded", client.ErrValidation)
	}
	if bloggerID == nil {
		return nil, fmt.Errorf("%w: blogger is required", client.ErrValidation)
	}
	return s.client.CreateOrder(ctx, models.OrderCreate{
		ProductID:    product.ID,
		BloggerID:    *bloggerID,
		Quantity:     quantity,
		PricePerItem: product.Price,
		ClientPhone:  strings.TrimSpace(phone),
	})
}

// Register creates a shop and sends the user to the login view.
func (s *ShopService) Register(ctx context.Context, req models.ShopCreate) (*models.Shop, error) {
	shop, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.nav != nil {
		s.nav.Push(common.ViewLogin)
	}
	return shop, nil
}
