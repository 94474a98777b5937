package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/affiliate/internal/client/authz"
	"github.com/dmitrijs2005/affiliate/internal/client/client"
	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/client/nav"
	"github.com/dmitrijs2005/affiliate/internal/client/services"
	"github.com/dmitrijs2005/affiliate/internal/common"
	"github.com/dmitrijs2005/affiliate/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ fakes ------------

type fakeSession struct {
	shop    *models.Shop
	loading bool

	history  *nav.History
	loginErr error
	logins   int
}

func (s *fakeSession) Initialize(context.Context) {}
func (s *fakeSession) IsAuthenticated() bool      { return s.shop != nil }
func (s *fakeSession) Loading() bool              { return s.loading }
func (s *fakeSession) Shop() *models.Shop         { return s.shop }

func (s *fakeSession) Login(_ context.Context, email, _ string) error {
	s.logins++
	if s.loginErr != nil {
		return s.loginErr
	}
	s.shop = &models.Shop{ID: 1, Name: "Acme", Email: email}
	s.history.Replace(common.ViewDashboard)
	return nil
}

func (s *fakeSession) Logout(context.Context) {
	s.shop = nil
	s.history.Replace(common.ViewLogin)
}

type fakeShops struct {
	calls []string

	dashboard     func() ([]models.Product, error)
	details       func(id int64) (*services.ProductDetails, error)
	updateStatus  func(productID, orderID int64, s models.OrderStatus) (*services.ProductDetails, error)
	resolve       func(code string) (*models.AffiliateLink, error)
	landing       func(productID int64, bloggerID *int64) (*models.Product, error)
	placeOrder    func(p *models.Product, bloggerID *int64, phone string, qty int) (*models.Order, error)
	createLink    func(productID, bloggerID int64) (*models.AffiliateLink, string, error)
	createProduct func(name, description string, price float64) (*models.Product, error)
}

func (f *fakeShops) Dashboard(context.Context) ([]models.Product, error) {
	f.calls = append(f.calls, "Dashboard")
	if f.dashboard != nil {
		return f.dashboard()
	}
	return nil, nil
}

func (f *fakeShops) CreateProduct(_ context.Context, name, description string, price float64) (*models.Product, error) {
	f.calls = append(f.calls, "CreateProduct")
	if f.createProduct != nil {
		return f.createProduct(name, description, price)
	}
	return &models.Product{Name: name}, nil
}

func (f *fakeShops) ProductDetails(_ context.Context, id int64) (*services.ProductDetails, error) {
	f.calls = append(f.calls, "ProductDetails")
	if f.details != nil {
		return f.details(id)
	}
	return &services.ProductDetails{Product: &models.Product{ID: id}}, nil
}

func (f *fakeShops) UpdateOrderStatus(_ context.Context, productID, orderID int64, s models.OrderStatus) (*services.ProductDetails, error) {
	f.calls = append(f.calls, "UpdateOrderStatus")
	if f.updateStatus != nil {
		return f.updateStatus(productID, orderID, s)
	}
	return &services.ProductDetails{Product: &models.Product{ID: productID}}, nil
}

func (f *fakeShops) Bloggers(context.Context) (*services.BloggersPage, error) {
	f.calls = append(f.calls, "Bloggers")
	return &services.BloggersPage{}, nil
}

func (f *fakeShops) CreateBlogger(_ context.Context, req models.BloggerCreate) (*models.Blogger, error) {
	f.calls = append(f.calls, "CreateBlogger")
	return &models.Blogger{Name: req.Name, Email: req.Email}, nil
}

func (f *fakeShops) CreateAffiliateLink(_ context.Context, productID, bloggerID int64) (*models.AffiliateLink, string, error) {
	f.calls = append(f.calls, "CreateAffiliateLink")
	if f.createLink != nil {
		return f.createLink(productID, bloggerID)
	}
	return &models.AffiliateLink{Code: "c"}, "http://x/#/products/c", nil
}

func (f *fakeShops) ResolveAffiliateLink(_ context.Context, code string) (*models.AffiliateLink, error) {
	f.calls = append(f.calls, "ResolveAffiliateLink")
	if f.resolve != nil {
		return f.resolve(code)
	}
	return &models.AffiliateLink{Code: code}, nil
}

func (f *fakeShops) Landing(_ context.Context, productID int64, bloggerID *int64) (*models.Product, error) {
	f.calls = append(f.calls, "Landing")
	if f.landing != nil {
		return f.landing(productID, bloggerID)
	}
	return &models.Product{ID: productID, Price: 10}, nil
}

func (f *fakeShops) PlaceOrder(_ context.Context, p *models.Product, bloggerID *int64, phone string, qty int) (*models.Order, error) {
	f.calls = append(f.calls, "PlaceOrder")
	if f.placeOrder != nil {
		return f.placeOrder(p, bloggerID, phone, qty)
	}
	return &models.Order{ID: 1}, nil
}

func (f *fakeShops) Register(_ context.Context, req models.ShopCreate) (*models.Shop, error) {
	f.calls = append(f.calls, "Register")
	return &models.Shop{Name: req.Name}, nil
}

// ------------ helpers ------------

func newTestApp(sess *fakeSession, shops *fakeShops, input ...string) *App {
	history := nav.NewHistory("/")
	sess.history = history
	return &App{
		session: sess,
		shops:   shops,
		router:  nav.NewRouter(history, sess, nil),
		tokens:  authz.TokenSourceFunc(func(context.Context) (string, error) { return "", nil }),
		logger:  logging.Nop(),
		reader:  bufio.NewReader(strings.NewReader(strings.Join(input, "\n"))),
		out:     io.Discard,
	}
}

func loggedInSession() *fakeSession {
	return &fakeSession{shop: &models.Shop{ID: 1, Name: "Acme", Email: "a@acme.test"}}
}

func stubInputs(t *testing.T, answers []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func has(out []string, s string) bool {
	for _, l := range out {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// ------------ route guard ------------

func TestProtectedCommands_RequireLogin(t *testing.T) {
	ctx := context.Background()
	cmds := map[string]func(a *App) error{
		"products":   func(a *App) error { return a.Products(ctx, nil) },
		"product":    func(a *App) error { return a.Product(ctx, []string{"5"}) },
		"bloggers":   func(a *App) error { return a.Bloggers(ctx, nil) },
		"link":       func(a *App) error { return a.Link(ctx, []string{"5", "3"}) },
		"addproduct": func(a *App) error { return a.AddProduct(ctx, nil) },
		"addblogger": func(a *App) error { return a.AddBlogger(ctx, nil) },
	}

	for name, run := range cmds {
		t.Run(name, func(t *testing.T) {
			out := captureOutput(t)
			shops := &fakeShops{}
			a := newTestApp(&fakeSession{}, shops)

			require.NoError(t, run(a))
			assert.True(t, has(*out, msgLoginRequired))
			assert.Empty(t, shops.calls)
			assert.Equal(t, common.ViewLogin, a.router.History().Current())
		})
	}
}

func TestProtectedCommands_WaitWhileLoading(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{}
	a := newTestApp(&fakeSession{loading: true}, shops)

	require.NoError(t, a.Products(context.Background(), nil))
	assert.True(t, has(*out, msgLoading))
	assert.Empty(t, shops.calls)
}

// ------------ in-flight guard ------------

func TestSubmit_RefusesWhileInFlight(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{}
	a := newTestApp(loggedInSession(), shops)

	a.inFlight.Store(true)
	err := a.Products(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrorBusy)
	assert.True(t, has(*out, msgBusy))
	assert.Empty(t, shops.calls)

	a.inFlight.Store(false)
	require.NoError(t, a.Products(context.Background(), nil))
	assert.False(t, a.inFlight.Load())
}

func TestSubmit_ClearsFlagOnFailureAndPanic(t *testing.T) {
	captureOutput(t)
	a := newTestApp(loggedInSession(), &fakeShops{})

	require.Error(t, a.submit(func() error { return errors.New("boom") }))
	assert.False(t, a.inFlight.Load())

	require.Panics(t, func() { _ = a.submit(func() error { panic("boom") }) })
	assert.False(t, a.inFlight.Load())
}

func TestSubmit_NestedSubmissionIsRefused(t *testing.T) {
	captureOutput(t)
	a := newTestApp(loggedInSession(), &fakeShops{})

	var inner error
	require.NoError(t, a.submit(func() error {
		inner = a.submit(func() error { return nil })
		return nil
	}))
	require.ErrorIs(t, inner, common.ErrorBusy)
}

// ------------ shop commands ------------

func TestProducts_StaticMessageOnFailure(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{dashboard: func() ([]models.Product, error) {
		return nil, &client.StatusError{Code: 500, Body: "secret internals"}
	}}
	a := newTestApp(loggedInSession(), shops)

	err := a.Products(context.Background(), nil)
	require.ErrorIs(t, err, client.ErrUnexpectedStatus)
	assert.Equal(t, []string{msgLoadProducts}, *out)
}

func TestProducts_Lists(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{dashboard: func() ([]models.Product, error) {
		return []models.Product{{ID: 1, Name: "Mug", Price: 9.5}}, nil
	}}
	a := newTestApp(loggedInSession(), shops)

	require.NoError(t, a.Products(context.Background(), nil))
	assert.True(t, has(*out, "Mug"))
	assert.Equal(t, common.ViewDashboard, a.router.History().Current())
}

func TestAddProduct(t *testing.T) {
	captureOutput(t)
	var gotName string
	var gotPrice float64
	shops := &fakeShops{createProduct: func(name, _ string, price float64) (*models.Product, error) {
		gotName, gotPrice = name, price
		return &models.Product{ID: 2, Name: name, Price: price}, nil
	}}
	a := newTestApp(loggedInSession(), shops)
	stubInputs(t, []string{"Mug", "", "abc", "9.50"}, "")

	require.NoError(t, a.AddProduct(context.Background(), nil))
	assert.Equal(t, "Mug", gotName)
	assert.Equal(t, 9.5, gotPrice)
}

func TestStatus_NeedsProductPage(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{}
	a := newTestApp(loggedInSession(), shops)

	require.NoError(t, a.Status(context.Background(), []string{"9", "processed"}))
	assert.True(t, has(*out, msgNoProductShown))
	assert.Empty(t, shops.calls)
}

func TestStatus_OnProductPage(t *testing.T) {
	captureOutput(t)
	var gotProduct, gotOrder int64
	var gotStatus models.OrderStatus
	shops := &fakeShops{updateStatus: func(p, o int64, s models.OrderStatus) (*services.ProductDetails, error) {
		gotProduct, gotOrder, gotStatus = p, o, s
		return &services.ProductDetails{Product: &models.Product{ID: p}}, nil
	}}
	a := newTestApp(loggedInSession(), shops)
	ctx := context.Background()

	require.NoError(t, a.Product(ctx, []string{"5"}))
	require.NoError(t, a.Status(ctx, []string{"9", "cancelled"}))

	assert.Equal(t, int64(5), gotProduct)
	assert.Equal(t, int64(9), gotOrder)
	assert.Equal(t, models.OrderStatusCancelled, gotStatus)
}

func TestStatus_RejectsUnknownStatus(t *testing.T) {
	captureOutput(t)
	shops := &fakeShops{}
	a := newTestApp(loggedInSession(), shops)
	ctx := context.Background()

	require.NoError(t, a.Product(ctx, []string{"5"}))
	require.ErrorIs(t, a.Status(ctx, []string{"9", "shipped"}), models.ErrInvalidOrderStatus)
	assert.NotContains(t, shops.calls, "UpdateOrderStatus")
}

func TestProduct_DetailsFailure(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{details: func(int64) (*services.ProductDetails, error) { return nil, client.ErrUnavailable }}
	a := newTestApp(loggedInSession(), shops)

	require.ErrorIs(t, a.Product(context.Background(), []string{"5"}), client.ErrUnavailable)
	assert.Equal(t, []string{msgLoadDetails}, *out)
}

func TestLink_PrintsShareURL(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{createLink: func(p, b int64) (*models.AffiliateLink, string, error) {
		return &models.AffiliateLink{ProductID: p, BloggerID: b, Code: "xyz"}, "https://shop.test/#/products/xyz", nil
	}}
	a := newTestApp(loggedInSession(), shops)

	require.NoError(t, a.Link(context.Background(), []string{"5", "3"}))
	assert.True(t, has(*out, "https://shop.test/#/products/xyz"))
}

// ------------ session commands ------------

func TestLogin_ReplacesLoginView(t *testing.T) {
	out := captureOutput(t)
	sess := &fakeSession{}
	a := newTestApp(sess, &fakeShops{})
	ctx := context.Background()
	stubInputs(t, []string{"owner@acme.test"}, "secret")

	require.NoError(t, a.Visit(ctx, []string{"5"}))
	require.NoError(t, a.Login(ctx, nil))

	assert.True(t, has(*out, "Logged in as Acme"))
	assert.Equal(t, common.ViewDashboard, a.router.History().Current())

	require.NoError(t, a.Back(ctx, nil))
	assert.Equal(t, "/products/5", a.router.History().Current(), "back skips the login form")
}

func TestLogin_AfterProtectedBounceBackSkipsLoginForm(t *testing.T) {
	out := captureOutput(t)
	sess := &fakeSession{}
	a := newTestApp(sess, &fakeShops{})
	ctx := context.Background()
	stubInputs(t, []string{"owner@acme.test"}, "secret")

	require.NoError(t, a.Where(ctx, nil))
	require.Equal(t, common.ViewLogin, a.router.History().Current())

	require.NoError(t, a.Products(ctx, nil))
	assert.True(t, has(*out, msgLoginRequired))
	assert.Equal(t, 1, a.router.History().Len())

	require.NoError(t, a.Login(ctx, nil))
	assert.Equal(t, common.ViewDashboard, a.router.History().Current())

	require.NoError(t, a.Back(ctx, nil))
	assert.Equal(t, common.ViewDashboard, a.router.History().Current(), "back never lands on the login form")
	assert.True(t, has(*out, "Nowhere to go back to"))
}

func TestLogin_FailureMessage(t *testing.T) {
	out := captureOutput(t)
	sess := &fakeSession{loginErr: &client.StatusError{Code: 401}}
	a := newTestApp(sess, &fakeShops{})
	stubInputs(t, []string{"x@y.test"}, "bad")

	require.Error(t, a.Login(context.Background(), nil))
	assert.True(t, has(*out, msgLogin))
	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, common.ViewLogin, a.router.History().Current())
}

func TestLogout(t *testing.T) {
	captureOutput(t)
	sess := loggedInSession()
	a := newTestApp(sess, &fakeShops{})
	a.landing = landing{product: &models.Product{ID: 1}}

	require.NoError(t, a.Logout(context.Background(), nil))
	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, a.landing.product)
	assert.Equal(t, common.ViewLogin, a.router.History().Current())
}

func TestRegister_OpensLogin(t *testing.T) {
	captureOutput(t)
	shops := &fakeShops{}
	a := newTestApp(&fakeSession{}, shops)
	// The real service pushes the login view after registering.
	a.shops = registerPusher{fakeShops: shops, history: a.router.History()}
	stubInputs(t, []string{"New Shop", "new@shop.test", ""}, "secret1")

	require.NoError(t, a.Register(context.Background(), nil))
	assert.Contains(t, shops.calls, "Register")
	assert.Equal(t, common.ViewLogin, a.router.History().Current())
}

type registerPusher struct {
	*fakeShops
	history *nav.History
}

func (r registerPusher) Register(ctx context.Context, req models.ShopCreate) (*models.Shop, error) {
	s, err := r.fakeShops.Register(ctx, req)
	r.history.Push(common.ViewLogin)
	return s, err
}

func TestWhoAmI_DecodesToken(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(loggedInSession(), &fakeShops{})

	exp := time.Now().Add(time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@acme.test",
		"exp": exp.Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	a.tokens = authz.TokenSourceFunc(func(context.Context) (string, error) { return tok, nil })

	require.NoError(t, a.WhoAmI(context.Background(), nil))
	assert.True(t, has(*out, "Shop #1 Acme"))
	assert.True(t, has(*out, "Token subject: a@acme.test"))
	assert.True(t, has(*out, "Token expires:"))
}

func TestWhoAmI_LoggedOut(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(&fakeSession{}, &fakeShops{})

	require.NoError(t, a.WhoAmI(context.Background(), nil))
	assert.Equal(t, []string{"Not logged in"}, *out)
}

// ------------ landing ------------

func TestVisitAndOrder(t *testing.T) {
	captureOutput(t)
	var gotPhone string
	var gotQty int
	var gotBlogger int64
	shops := &fakeShops{placeOrder: func(p *models.Product, b *int64, phone string, qty int) (*models.Order, error) {
		gotPhone, gotQty, gotBlogger = phone, qty, *b
		return &models.Order{ID: 42}, nil
	}}
	a := newTestApp(&fakeSession{}, shops)
	ctx := context.Background()

	require.NoError(t, a.Visit(ctx, []string{"5", "3"}))
	stubInputs(t, []string{"555-1234", ""}, "")
	require.NoError(t, a.Order(ctx, nil))

	assert.Equal(t, "555-1234", gotPhone)
	assert.Equal(t, 1, gotQty, "empty quantity defaults to one")
	assert.Equal(t, int64(3), gotBlogger)
}

func TestOrder_RequiresBloggerAndLanding(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{}
	a := newTestApp(&fakeSession{}, shops)
	ctx := context.Background()

	require.NoError(t, a.Order(ctx, nil))
	assert.True(t, has(*out, msgNoLanding))

	require.NoError(t, a.Visit(ctx, []string{"5"}))
	require.NoError(t, a.Order(ctx, nil))
	assert.True(t, has(*out, msgOrderFields))
	assert.NotContains(t, shops.calls, "PlaceOrder")
}

func TestOrder_EmptyPhone(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{}
	a := newTestApp(&fakeSession{}, shops)
	ctx := context.Background()

	require.NoError(t, a.Visit(ctx, []string{"5", "3"}))
	stubInputs(t, []string{"", "2"}, "")
	require.NoError(t, a.Order(ctx, nil))
	assert.True(t, has(*out, msgOrderFields))
	assert.NotContains(t, shops.calls, "PlaceOrder")
}

func TestResolve_OpensLandingWithBlogger(t *testing.T) {
	captureOutput(t)
	var seenBlogger *int64
	shops := &fakeShops{
		resolve: func(code string) (*models.AffiliateLink, error) {
			return &models.AffiliateLink{Code: code, ProductID: 5, BloggerID: 3}, nil
		},
		landing: func(productID int64, bloggerID *int64) (*models.Product, error) {
			seenBlogger = bloggerID
			return &models.Product{ID: productID}, nil
		},
	}
	a := newTestApp(&fakeSession{}, shops)

	require.NoError(t, a.Resolve(context.Background(), []string{"abc"}))
	require.NotNil(t, seenBlogger)
	assert.Equal(t, int64(3), *seenBlogger)
	assert.Equal(t, "/products/abc", a.router.History().Current())
	assert.Equal(t, int64(5), a.landing.product.ID)
}

func TestVisit_FailureClearsLanding(t *testing.T) {
	out := captureOutput(t)
	shops := &fakeShops{landing: func(int64, *int64) (*models.Product, error) { return nil, client.ErrUnavailable }}
	a := newTestApp(&fakeSession{}, shops)
	a.landing = landing{product: &models.Product{ID: 9}}

	require.ErrorIs(t, a.Visit(context.Background(), []string{"5"}), client.ErrUnavailable)
	assert.True(t, has(*out, msgLoadLanding))
	assert.Nil(t, a.landing.product)
}
