package nav

import (
	"strings"

	"github.com/dmitrijs2005/affiliate/internal/common"
)

// Page identifies what the client shows for a path.
type Page string

const (
	PageLoading        Page = "loading"
	PageLogin          Page = "login"
	PageRegister       Page = "register"
	PageDashboard      Page = "dashboard"
	PageProductDetails Page = "product-details"
	PageBloggers       Page = "bloggers"
	PageLanding        Page = "landing"
	PageNotFound       Page = "not-found"
)

// Gate is the session view the router needs.
type Gate interface {
	Loading() bool
	IsAuthenticated() bool
}

// Route maps a path pattern to a page. Pattern segments of the form
// {name} capture one non-empty segment. A route with Redirect set sends
// the client elsewhere instead of showing a page.
type Route struct {
	Pattern   string
	Page      Page
	Protected bool
	Redirect  string
}

// DefaultRoutes is the client's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "/", Redirect: common.ViewLogin},
		{Pattern: common.ViewLogin, Page: PageLogin},
		{Pattern: common.ViewRegister, Page: PageRegister},
		{Pattern: common.ViewDashboard, Page: PageDashboard, Protected: true},
		{Pattern: "/shop/products/{id}", Page: PageProductDetails, Protected: true},
		{Pattern: common.ViewBloggers, Page: PageBloggers, Protected: true},
		{Pattern: "/products/{code}", Page: PageLanding},
	}
}

// Match is the outcome of resolving the current path.
type Match struct {
	Page   Page
	Path   string
	Params map[string]string
	// From is the protected path the user was turned away from, if any.
	From string
}

type Router struct {
	routes  []Route
	history *History
	gate    Gate
}

func NewRouter(history *History, gate Gate, routes []Route) *Router {
	if routes == nil {
		routes = DefaultRoutes()
	}
	return &Router{routes: routes, history: history, gate: gate}
}

func (r *Router) History() *History { return r.history }

// Push navigates to path and resolves it.
func (r *Router) Push(path string) Match {
	r.history.Push(path)
	return r.Resolve()
}

// Replace navigates to path without leaving the current entry in history.
func (r *Router) Replace(path string) Match {
	r.history.Replace(path)
	return r.Resolve()
}

// Back returns to the previous entry. ok is false at the start of history.
func (r *Router) Back() (Match, bool) {
	_, ok := r.history.Back()
	return r.Resolve(), ok
}

// Resolve maps the current entry to a page. While the session is loading
// nothing is decided; an unauthenticated visit to a protected page is
// replaced by the login page.
func (r *Router) Resolve() Match {
	path := r.history.Current()
	if r.gate != nil && r.gate.Loading() {
		return Match{Page: PageLoading, Path: path}
	}

	for i := 0; i < len(r.routes)+1; i++ {
		route, params, ok := r.lookup(path)
		if !ok {
			return Match{Page: PageNotFound, Path: path}
		}
		if route.Redirect != "" {
			r.history.Redirect(route.Redirect)
			path = route.Redirect
			continue
		}
		if route.Protected && (r.gate == nil || !r.gate.IsAuthenticated()) {
			r.history.Redirect(common.ViewLogin)
			return Match{Page: PageLogin, Path: common.ViewLogin, From: path}
		}
		return Match{Page: route.Page, Path: path, Params: params}
	}
	// redirect loop
	return Match{Page: PageNotFound, Path: path}
}

func (r *Router) lookup(path string) (Route, map[string]string, bool) {
	segs := split(path)
	for _, route := range r.routes {
		if params, ok := match(split(route.Pattern), segs); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func match(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:len(p)-1]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// split drops the query, fragment and surrounding slashes.
func split(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
