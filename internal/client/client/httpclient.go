package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/affiliate/internal/client/authz"
	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/logging"
	"golang.org/x/oauth2"
)

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 4 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the API at baseURL. Requests are
// authorized with credentials from tokens; base is the underlying
// transport (http.DefaultTransport when nil).
func NewHTTPClient(baseURL string, tokens authz.TokenSource, base http.RoundTripper, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host are required", baseURL)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	rt := authz.NewTransport(newLoggingTransport(base, logger), tokens, u.Path, logger)

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Transport: rt},
		logger:  logger,
	}, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawPath = ""
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func validate(v any) error {
	if err := models.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Shop, string, error) {
	cfg := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.endpoint("/token", nil),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	tok, err := cfg.PasswordCredentialsToken(context.WithValue(ctx, oauth2.HTTPClient, c.http), email, password)
	if err != nil {
		return nil, "", c.mapTokenError(err)
	}

	shopID, err := extraInt(tok, "shop_id")
	if err != nil {
		return nil, "", fmt.Errorf("token response: %w", err)
	}

	shop, err := c.GetShop(authz.WithAccessToken(ctx, tok.AccessToken), shopID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch shop %d: %w", shopID, err)
	}

	// The token response carries a summary; the shop record wins where set.
	if shop.ID == 0 {
		shop.ID = shopID
	}
	if shop.Name == "" {
		shop.Name, _ = tok.Extra("name").(string)
	}
	if shop.Email == "" {
		shop.Email, _ = tok.Extra("email").(string)
	}

	return shop, tok.AccessToken, nil
}

func (c *HTTPClient) mapTokenError(err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		se := &StatusError{Method: http.MethodPost, Path: "/token", Body: strings.TrimSpace(string(rErr.Body))}
		if rErr.Response != nil {
			se.Code = rErr.Response.StatusCode
		}
		return se
	}
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return fmt.Errorf("token exchange: %w", err)
}

// extraInt reads a numeric field of the token response.
func extraInt(tok *oauth2.Token, key string) (int64, error) {
	switch v := tok.Extra(key).(type) {
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("missing %s", key)
	}
}

func (c *HTTPClient) Register(ctx context.Context, req models.ShopCreate) (*models.Shop, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var shop models.Shop
	if err := c.do(ctx, http.MethodPost, "/shops/", nil, req, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (c *HTTPClient) GetShop(ctx context.Context, id int64) (*models.Shop, error) {
	var shop models.Shop
	if err := c.do(ctx, http.MethodGet, "/shops/me/"+strconv.FormatInt(id, 10), nil, nil, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int64, bloggerID *int64) (*models.Product, error) {
	var q url.Values
	if bloggerID != nil {
		q = url.Values{"blogger_id": {strconv.FormatInt(*bloggerID, 10)}}
	}
	var p models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), q, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error) {
	q := url.Values{"skip": {strconv.Itoa(skip)}, "limit": {strconv.Itoa(limit)}}
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, req models.ProductCreate) (*models.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var p models.Product
	if err := c.do(ctx, http.MethodPost, "/products/", nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetProductAnalytics(ctx context.Context, productID int64) ([]models.Analytics, error) {
	var out []models.Analytics
	path := "/products/" + strconv.FormatInt(productID, 10) + "/analytics"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req models.OrderCreate) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var o models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *HTTPClient) ListProductOrders(ctx context.Context, productID int64) ([]models.Order, error) {
	var out []models.Order
	path := "/products/" + strconv.FormatInt(productID, 10) + "/orders/"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	if _, err := models.ParseOrderStatus(string(status)); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	q := url.Values{"status": {string(status)}}
	return c.do(ctx, http.MethodPut, "/orders/"+strconv.FormatInt(orderID, 10)+"/status", q, nil, nil)
}

func (c *HTTPClient) CreateAffiliateLink(ctx context.Context, req models.AffiliateLinkCreate) (*models.AffiliateLink, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var l models.AffiliateLink
	if err := c.do(ctx, http.MethodPost, "/affiliate-links/", nil, req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *HTTPClient) GetAffiliateLink(ctx context.Context, code string) (*models.AffiliateLink, error) {
	if code == "" || strings.ContainsAny(code, "/?#") {
		return nil, fmt.Errorf("%w: invalid link code %q", ErrValidation, code)
	}
	var l models.AffiliateLink
	if err := c.do(ctx, http.MethodGet, "/affiliate-links/"+code, nil, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *HTTPClient) ListBloggers(ctx context.Context) ([]models.Blogger, error) {
	var out []models.Blogger
	if err := c.do(ctx, http.MethodGet, "/bloggers/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateBlogger(ctx context.Context, req models.BloggerCreate) (*models.Blogger, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var b models.Blogger
	if err := c.do(ctx, http.MethodPost, "/bloggers/", nil, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
