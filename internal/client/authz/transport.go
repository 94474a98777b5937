package authz

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/affiliate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/affiliate/internal/common"
	"github.com/dmitrijs2005/affiliate/internal/logging"
	"golang.org/x/oauth2"
)

// TokenSource yields the current credential. An empty token means none.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) AccessToken(ctx context.Context) (string, error) { return f(ctx) }

// StorageTokenSource reads the persisted credential on every call.
type StorageTokenSource struct {
	Repo metadata.Repository
}

func (s StorageTokenSource) AccessToken(ctx context.Context) (string, error) {
	v, err := s.Repo.Get(ctx, common.StorageKeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

type ctxKey struct{}

// WithAccessToken overrides the TokenSource for requests made with ctx.
// Login uses it to fetch the shop record with a token that is not
// persisted yet.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

func accessTokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(ctxKey{}).(string)
	return tok, ok
}

// Transport attaches the bearer credential to protected requests.
type Transport struct {
	// Base is the next stage; http.DefaultTransport when nil.
	Base http.RoundTripper
	// Policy classifies requests; DefaultPolicy when nil.
	Policy *Policy
	// Tokens supplies the credential.
	Tokens TokenSource
	// BasePath is stripped from the request path before classification,
	// e.g. "/api" when the API is mounted under a prefix.
	BasePath string
	Logger   logging.Logger
}

// NewTransport builds a Transport with the default policy.
func NewTransport(base http.RoundTripper, tokens TokenSource, basePath string, logger logging.Logger) *Transport {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Transport{Base: base, Policy: DefaultPolicy(), Tokens: tokens, BasePath: basePath, Logger: logger}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	r := req.Clone(ctx)

	if t.policy().Classify(r.Method, t.relativePath(r.URL.Path)) == Public {
		r.Header.Del("Authorization")
		return t.base().RoundTrip(r)
	}

	token := t.token(ctx)
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(r)
	}
	return t.base().RoundTrip(r)
}

// token resolves the credential for a protected request. A failing source
// is logged and treated as no credential.
func (t *Transport) token(ctx context.Context) string {
	if tok, ok := accessTokenFromContext(ctx); ok {
		return tok
	}
	if t.Tokens == nil {
		return ""
	}
	tok, err := t.Tokens.AccessToken(ctx)
	if err != nil {
		t.logger().Warn(ctx, "access token unavailable, sending request without credential", "error", err)
		return ""
	}
	return tok
}

func (t *Transport) relativePath(p string) string {
	base := strings.TrimRight(t.BasePath, "/")
	if base == "" {
		return p
	}
	if p == base {
		return "/"
	}
	if strings.HasPrefix(p, base+"/") {
		return p[len(base):]
	}
	return p
}

func (t *Transport) policy() *Policy {
	if t.Policy == nil {
		return DefaultPolicy()
	}
	return t.Policy
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func (t *Transport) logger() logging.Logger {
	if t.Logger == nil {
		return logging.Nop()
	}
	return t.Logger
}
