package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/affiliate/internal/client/authz"
	"github.com/dmitrijs2005/affiliate/internal/client/client"
	"github.com/dmitrijs2005/affiliate/internal/client/config"
	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/client/nav"
	"github.com/dmitrijs2005/affiliate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/affiliate/internal/client/services"
	"github.com/dmitrijs2005/affiliate/internal/client/session"
	"github.com/dmitrijs2005/affiliate/internal/logging"
)

// sessionStore is the part of *session.Store the CLI drives.
type sessionStore interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	IsAuthenticated() bool
	Loading() bool
	Shop() *models.Shop
}

// shopService is the part of *services.ShopService the CLI drives.
type shopService interface {
	Dashboard(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, name, description string, price float64) (*models.Product, error)
	ProductDetails(ctx context.Context, productID int64) (*services.ProductDetails, error)
	UpdateOrderStatus(ctx context.Context, productID, orderID int64, status models.OrderStatus) (*services.ProductDetails, error)
	Bloggers(ctx context.Context) (*services.BloggersPage, error)
	CreateBlogger(ctx context.Context, req models.BloggerCreate) (*models.Blogger, error)
	CreateAffiliateLink(ctx context.Context, productID, bloggerID int64) (*models.AffiliateLink, string, error)
	ResolveAffiliateLink(ctx context.Context, code string) (*models.AffiliateLink, error)
	Landing(ctx context.Context, productID int64, bloggerID *int64) (*models.Product, error)
	PlaceOrder(ctx context.Context, product *models.Product, bloggerID *int64, phone string, quantity int) (*models.Order, error)
	Register(ctx context.Context, req models.ShopCreate) (*models.Shop, error)
}

// landing is the product a visitor is looking at, and the blogger whose
// link brought them there.
type landing struct {
	product   *models.Product
	bloggerID *int64
}

type App struct {
	config  *config.Config
	db      *sql.DB
	session sessionStore
	shops   shopService
	router  *nav.Router
	tokens  authz.TokenSource
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	inFlight atomic.Bool
	landing  landing
}

// NewApp opens the local database and wires the session, the API client
// and the router.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	tokens := authz.StorageTokenSource{Repo: metadata.NewSQLiteRepository(db)}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, tokens, nil, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	history := nav.NewHistory("/")
	store := session.NewStore(db, apiClient, history, logger)
	router := nav.NewRouter(history, store, nil)

	return &App{
		config:  c,
		db:      db,
		session: store,
		shops:   services.NewShopService(apiClient, store, history, c.PublicBaseURL),
		router:  router,
		tokens:  tokens,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the previous session and serves commands until the user
// exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Initialize(ctx)
	printlnFn("Welcome to the affiliate shop CLI (type 'help' for commands)")
	a.show(a.router.Resolve())

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status is the prompt prefix: the shop name and the current view.
func (a *App) status() string {
	where := a.router.History().Current()
	if shop := a.session.Shop(); shop != nil {
		return fmt.Sprintf("(%s %s)", shop.Name, where)
	}
	return fmt.Sprintf("(%s)", where)
}
